// Package main is the entry point for the pyselect command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/config"
	"github.com/dshills/pyselect/internal/logging"
	"github.com/dshills/pyselect/internal/project"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitNoSelection = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// env is the state shared by every command, built from the global flags
// before a command runs.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg       *config.Config
	logger    *logging.Logger
	resolver  *block.Resolver
	languages *project.LanguageMatcher
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}

	app := &cli.App{
		Name:      "pyselect",
		Usage:     "Select Python blocks by indentation",
		Version:   fmt.Sprintf("%s (%s, %s)", version, commit, date),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML or YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Resolution mode: block or forward",
			},
			&cli.StringSliceFlag{
				Name:  "keyword",
				Usage: "Block-opening keyword (repeatable, replaces the configured set)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
			},
		},
		Before: func(cCtx *cli.Context) error {
			return e.setup(cCtx)
		},
		Commands: []*cli.Command{
			selectCommand(e),
			outlineCommand(e),
			serveCommand(e),
			viewCommand(e),
			scriptCommand(e),
		},
		// Exit codes are mapped by run so it stays testable.
		ExitErrHandler: func(*cli.Context, error) {},
	}

	err := app.RunContext(ctx, args)
	if err == nil {
		return exitOK
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			_, _ = fmt.Fprintf(stderr, "Error: %s\n", msg)
		}
		return exitErr.ExitCode()
	}
	_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
	return exitError
}

// setup loads configuration and builds the shared resolver, language
// guard and logger.
func (e *env) setup(cCtx *cli.Context) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	e.cfg = config.New(
		config.WithProjectDir(wd),
		config.WithConfigFile(cCtx.String("config")),
	)
	if err := e.cfg.Load(cCtx.Context); err != nil {
		return err
	}
	if cCtx.IsSet("mode") {
		e.cfg.SetFlag("resolver.mode", cCtx.String("mode"))
	}
	if cCtx.IsSet("keyword") {
		e.cfg.SetFlag("resolver.keywords", cCtx.StringSlice("keyword"))
	}
	if cCtx.IsSet("log-level") {
		e.cfg.SetFlag("logging.level", cCtx.String("log-level"))
	}

	level, ok := logging.ParseLevel(e.cfg.Logging().Level)
	if !ok {
		return fmt.Errorf("unknown log level %q", e.cfg.Logging().Level)
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = e.stderr
	e.logger = logging.New(cfg)
	logging.SetDefault(e.logger)

	if cCtx.IsSet("mode") {
		if _, err := block.ParseMode(cCtx.String("mode")); err != nil {
			return err
		}
	}
	rc := e.cfg.Resolver()
	mode, _ := block.ParseMode(rc.Mode)
	e.resolver = block.NewResolver(block.WithMode(mode), block.WithKeywords(rc.Keywords...))

	lc := e.cfg.Languages()
	e.languages, err = project.NewLanguageMatcher(lc.IDs, lc.Patterns)
	if err != nil {
		return fmt.Errorf("languages: %w", err)
	}

	for path, err := range e.cfg.ConfigErrors() {
		e.logger.Warn("config %s: %v", path, err)
	}
	e.logger.Debug("resolver mode %s, %d keywords", mode, len(rc.Keywords))
	return nil
}
