// Package cmd implements the cst command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/costsheet"
	"github.com/etnz/costsheet/persist"
	"github.com/etnz/costsheet/share"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "items")
	c.Register(&insertCmd{}, "items")
	c.Register(&setCmd{}, "items")
	c.Register(&rmCmd{}, "items")
	c.Register(&renumberCmd{}, "items")
	c.Register(&lsCmd{}, "items")

	c.Register(&projectCmd{}, "project")
	c.Register(&summaryCmd{}, "project")
	c.Register(&reportCmd{}, "project")

	c.Register(&exportCmd{}, "files")
	c.Register(&importCmd{}, "files")
	c.Register(&shareCmd{}, "files")
	c.Register(&openCmd{}, "files")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the configuration file (JSON with comments). Defaults to "+DefaultConfigFile+" when present.")
	_          = flag.String("store", "", "Storage directory, or database file with the sqlite backend.")
	_          = flag.String("backend", BackendFile, "Storage backend: file or sqlite.")
	_          = flag.Bool("v", false, "Log debug messages.")
)

// LoadConfig returns the configuration of this run.
func LoadConfig() (Config, error) {
	flags := make(map[string]string)
	flag.CommandLine.Visit(func(f *flag.Flag) { flags[f.Name] = f.Value.String() })
	return loadConfig(*configFile, environ(), flags)
}

func environ() map[string]string {
	res := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			res[k] = v
		}
	}
	return res
}

// NewLogger returns the logger of the application, writing text to stderr.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// workspace is what a command works on: the configuration, the persisted
// session and the share codec.
type workspace struct {
	cfg     Config
	logger  *slog.Logger
	session *costsheet.Session
	codec   share.Codec
	close   func() error
}

// openStorage opens the storage selected by the configuration.
func openStorage(cfg Config) (persist.Storage, func() error, error) {
	switch cfg.Backend {
	case BackendSQLite:
		db, err := persist.OpenSQLite(cfg.StorePath())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return persist.NewFileStorage(cfg.StorePath()), func() error { return nil }, nil
	}
}

// openWorkspace loads the configuration and restores the saved statement.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.Verbose)
	store, closer, err := openStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open storage: %w", err)
	}
	adapter := persist.NewAdapter(store, persist.WithLogger(logger))

	state, ok := adapter.Load(ctx)
	if !ok {
		logger.DebugContext(ctx, "no saved statement, starting a new one", "store", cfg.StorePath())
		state = costsheet.NewState()
	}
	return &workspace{
		cfg:     cfg,
		logger:  logger,
		session: costsheet.NewSession(state, costsheet.WithSaver(adapter), costsheet.WithLogger(logger)),
		codec:   share.Codec{Origin: cfg.ShareOrigin, Path: cfg.SharePath},
		close:   closer,
	}, nil
}

// withWorkspace runs fn on the workspace and reports errors the way every
// command does.
func withWorkspace(ctx context.Context, fn func(*workspace) subcommands.ExitStatus) subcommands.ExitStatus {
	ws, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := ws.close(); err != nil {
			ws.logger.WarnContext(ctx, "cannot close storage", "error", err)
		}
	}()
	return fn(ws)
}

// printMarkdown renders markdown for the terminal, or prints it as is when
// it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
