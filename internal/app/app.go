// Package app provides the main application structure and coordination
// for tasktable. It wires the task store, the selection and sort
// controllers, the table view and the terminal backend, and runs the
// single-goroutine event loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/tasktable/internal/config"
	"github.com/dshills/tasktable/internal/plugin/lua"
	"github.com/dshills/tasktable/internal/renderer/backend"
	"github.com/dshills/tasktable/internal/selection"
	"github.com/dshills/tasktable/internal/sorting"
	"github.com/dshills/tasktable/internal/table"
	"github.com/dshills/tasktable/internal/task"
)

// Application is the central coordinator for all tasktable components.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config  *config.Config
	logger  *Logger
	metrics *Metrics
	logFile io.Closer

	// Table components
	store     *task.Store
	selection *selection.Controller
	sorter    *sorting.Controller
	view      *table.View
	hooks     *lua.Hooks
	backend   backend.Backend

	// Loop state, owned by the event loop goroutine
	lastButton backend.MouseButton
	lastError  error

	// State
	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// Config is a loaded configuration. Nil uses the defaults.
	Config *config.Config

	// Tasks replaces the configured data source.
	Tasks []task.Task

	// LogOutput receives log records. It overrides logging.file.
	LogOutput io.Writer
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
		logger:  NullLogger(),
	}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Backend returns the terminal backend (may be nil).
func (app *Application) Backend() backend.Backend {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.backend
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	b := app.Backend()
	if b == nil {
		// No backend - wait for shutdown
		<-app.done
		return nil
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.logger.Info("running with %d tasks", app.store.Len())
	app.render()

	return app.eventLoop()
}

// Shutdown asks the event loop to stop. Safe to call from any goroutine
// and more than once.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
	})
	if b := app.Backend(); b != nil {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// Close releases the hook state and the log file. Call after Run returns.
func (app *Application) Close() error {
	app.logger.WithFields(app.metrics.Snapshot().LogValues()).Info("closing")

	if app.hooks != nil {
		if err := app.hooks.Close(); err != nil {
			app.logComponentError("hooks", err)
		}
		app.hooks = nil
	}
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		app.logger = NullLogger()
		return err
	}
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Store returns the task store.
func (app *Application) Store() *task.Store {
	return app.store
}

// Selection returns the selection controller.
func (app *Application) Selection() *selection.Controller {
	return app.selection
}

// Sorter returns the sort controller.
func (app *Application) Sorter() *sorting.Controller {
	return app.sorter
}

// View returns the table view.
func (app *Application) View() *table.View {
	return app.view
}

// ExportSelection returns the selected tasks as JSON.
func (app *Application) ExportSelection() ([]byte, error) {
	return task.ExportSelection(app.store, app.selection.State().IDs)
}
