package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/tasktable/internal/config"
	"github.com/dshills/tasktable/internal/plugin/lua"
	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
	"github.com/dshills/tasktable/internal/table"
	"github.com/dshills/tasktable/internal/task"
)

// bootstrapper initializes components in dependency order and undoes the
// completed steps when a later one fails.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:  app,
		opts: app.opts,
	}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"data", b.initData},
		{"selection", b.initSelection},
		{"sort", b.initSort},
		{"hooks", b.initHooks},
		{"view", b.initView},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
	}

	b.app.logger.WithComponent("bootstrap").Debug("initialized %d components", len(steps))
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging() error {
	lc := b.app.config.Logging()

	out := b.opts.LogOutput
	if out == nil && lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		b.app.logFile = f
		out = f
	}
	if out == nil {
		out = io.Discard
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(lc.Level)
	cfg.Output = out
	b.app.logger = NewLogger(cfg)
	return nil
}

func (b *bootstrapper) initData() error {
	tasks := b.opts.Tasks
	source := "options"
	if tasks == nil {
		if path := b.app.config.Data().File; path != "" {
			loaded, err := task.LoadFile(path)
			if err != nil {
				return err
			}
			tasks, source = loaded, path
		} else {
			tasks, source = task.Demo(), "demo"
		}
	}

	store, err := task.NewStore(tasks)
	if err != nil {
		return err
	}
	b.app.store = store
	b.app.logger.WithComponent("data").Info("loaded %d tasks from %s", store.Len(), source)
	return nil
}

func (b *bootstrapper) initSelection() error {
	opts, initial, err := b.app.config.Select().SelectionOptions()
	if err != nil {
		return err
	}

	ctrl, err := selection.New(b.app.store.IDs(), opts, initial, b.app.selectionNotifier())
	if err != nil {
		return err
	}
	b.app.selection = ctrl
	return nil
}

func (b *bootstrapper) initSort() error {
	opts, err := b.app.config.Sort().SortOptions()
	if err != nil {
		return err
	}

	ctrl, err := sorting.New(sorting.DefaultFns(), opts, b.app.sortNotifier())
	if err != nil {
		return err
	}
	b.app.sorter = ctrl
	return nil
}

func (b *bootstrapper) initHooks() error {
	script := b.app.config.Hooks().Script
	if script == "" {
		return nil
	}

	log := b.app.logger.WithComponent("hooks")
	hooks, err := lua.LoadHooks(script, lua.WithPrinter(func(msg string) {
		log.Info("%s", msg)
	}))
	if err != nil {
		return err
	}
	b.app.hooks = hooks
	log.Info("loaded %s, hooks: %v", script, hooks.Defined())
	return nil
}

func (b *bootstrapper) initView() error {
	theme, err := table.ParseTheme(b.app.config.Theme().ThemeSpec())
	if err != nil {
		return err
	}

	b.app.view = table.NewView(table.DefaultColumns(), theme)
	b.app.refreshRows()
	return nil
}

// cleanup releases resources acquired by completed steps.
func (b *bootstrapper) cleanup() {
	if b.app.hooks != nil {
		_ = b.app.hooks.Close()
		b.app.hooks = nil
	}
	if b.app.logFile != nil {
		_ = b.app.logFile.Close()
		b.app.logFile = nil
	}
}
