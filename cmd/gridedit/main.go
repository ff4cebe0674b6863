// Package main is the entry point for the gridedit text editor.
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

	"golang.org/x/term"

	"github.com/dshills/gridedit/internal/app"
	"github.com/dshills/gridedit/internal/config"
	"github.com/dshills/gridedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line.
type options struct {
	ConfigPath string
	LogLevel   string
	File       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: gridedit must be run in a terminal")
		return 1
	}

	// A broken config file still yields usable defaults.
	cfg, cfgErr := config.Load(opts.ConfigPath)
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, closeLog, err := app.OpenLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer closeLog()

	logger.Info("gridedit %s (%s, %s)", version, commit, date)
	if cfgErr != nil {
		logger.Warn("config: %v", cfgErr)
	}

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Shutdown()
	screen.HideCursor()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(signals)

	editor, err := app.New(cfg, screen, app.WithLogger(logger), app.WithSignals(signals))
	if err != nil {
		screen.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer editor.Close()

	if err := editor.Open(opts.File); err != nil {
		// Shown in the status line; editing continues with an empty document.
		logger.Warn("open: %v", err)
	}

	if err := editor.Run(context.Background()); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridedit - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S  save            F12 / Ctrl+Shift+S  save as\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+A  select all      Ctrl+C  copy        Ctrl+X  cut\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q  quit            Shift+arrows  extend selection\n")
		fmt.Fprintf(os.Stderr, "\nConfiguration: %s\n", config.DefaultPath())
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gridedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.LogLevel = strings.ToLower(opts.LogLevel)
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "warning", "error", "off":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error or off)\n", opts.LogLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.File = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: gridedit edits one file at a time")
		os.Exit(1)
	}

	return opts
}
