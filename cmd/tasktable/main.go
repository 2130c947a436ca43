// Package main is the entry point for the tasktable terminal demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/tasktable/internal/app"
	"github.com/dshills/tasktable/internal/config"
	"github.com/dshills/tasktable/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if flags.print {
		data, err := application.ExportSelection()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
	}

	return 0
}

type cliFlags struct {
	configPath string
	print      bool

	// overrides holds config paths for flags given on the command line.
	overrides map[string]any
}

func parseFlags() cliFlags {
	var f cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&f.configPath, "c", "", "Path to TOML configuration file (shorthand)")
	flag.String("data", "", "Task data file (.json, .toml, .yaml or .yml)")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("log-file", "", "Write logs to this file")
	flag.String("row-select", "multi", "Row click mode (single, multi)")
	flag.String("button-select", "single", "Checkbox click mode (single, multi)")
	flag.Bool("carry-forward", true, "Keep the selection when switching between row and checkbox clicks")
	flag.String("click-type", "row", "What selects a task (row, button)")
	flag.String("select", "", "Initially selected task id")
	flag.String("select-ids", "", "Initially selected task ids, comma separated")
	flag.String("sort", "", "Initial sort column (task, deadline, type, complete)")
	flag.Bool("reverse", false, "Start the initial sort descending")
	flag.String("hook", "", "Lua hook script")
	flag.BoolVar(&f.print, "print", false, "Print the selected tasks as JSON on exit")
	flag.BoolVar(&f.print, "p", false, "Print the selected tasks as JSON on exit (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tasktable - selectable, sortable task table\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tasktable [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tasktable                          Show the built-in tasks\n")
		fmt.Fprintf(os.Stderr, "  tasktable -data tasks.yaml         Load tasks from a file\n")
		fmt.Fprintf(os.Stderr, "  tasktable -click-type button -p    Select with checkboxes only, print on exit\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed with %s override the config file.\n", config.EnvPrefix)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("tasktable %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %s\n", strings.Join(flag.Args(), " "))
		os.Exit(1)
	}

	// Only flags set explicitly override the file and the environment.
	f.overrides = make(map[string]any)
	flag.Visit(func(fl *flag.Flag) {
		path, ok := flagPaths[fl.Name]
		if !ok {
			return
		}
		if g, ok := fl.Value.(flag.Getter); ok {
			f.overrides[path] = g.Get()
		}
	})

	return f
}

// flagPaths maps command line flags onto config paths.
var flagPaths = map[string]string{
	"data":          "data.file",
	"log-level":     "logging.level",
	"log-file":      "logging.file",
	"row-select":    "select.rowSelect",
	"button-select": "select.buttonSelect",
	"carry-forward": "select.carryForward",
	"click-type":    "select.clickType",
	"select":        "select.initialId",
	"select-ids":    "select.initialIds",
	"sort":          "sort.key",
	"reverse":       "sort.reverse",
	"hook":          "hooks.script",
}

// loadConfig layers the defaults, the config file, the environment and the
// command line flags.
func loadConfig(f cliFlags) (*config.Config, error) {
	cfg := config.New(config.WithConfigFile(f.configPath))
	for path, value := range f.overrides {
		if err := cfg.Set(path, value); err != nil {
			return nil, fmt.Errorf("flag for %s: %w", path, err)
		}
	}
	if err := cfg.Load(context.Background()); err != nil {
		return nil, err
	}
	return cfg, nil
}
