package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hpungsan/snip/internal/clipboard"
	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/db"
	"github.com/hpungsan/snip/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// logLevel is shared by the default slog handler and the --debug flag.
var logLevel = new(slog.LevelVar)

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return true
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// setupLogging installs a text slog handler on w at the given level.
func setupLogging(w io.Writer, level slog.Level) {
	logLevel.Set(level)
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})))
}

// openStore returns the record store selected by cfg.Backend and a func that
// releases it.
func openStore(baseDir string, cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.Init(baseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db.ConfigurePool(database, cfg)
		return db.NewStore(database), database.Close, nil
	default:
		return store.NewJSON(store.DefaultPath(baseDir)), func() error { return nil }, nil
	}
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	setupLogging(os.Stderr, slog.LevelWarn)

	// Help, version, and the bare command need no config or store.
	if isHelpOrVersion(args) {
		app := newCLIApp(&env{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
		if err := app.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		return 1
	}
	baseDir := filepath.Join(homeDir, ".snip")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		return 1
	}
	level, _ := config.ParseLevel(cfg.LogLevel) // validated by Load
	setupLogging(os.Stderr, level)

	st, closeStore, err := openStore(baseDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		return 1
	}

	app := newCLIApp(&env{
		store:     st,
		cfg:       cfg,
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		clipboard: clipboard.System{},
		workDir:   workDir,
	})
	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
