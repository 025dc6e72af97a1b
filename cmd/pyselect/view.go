package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/dshills/pyselect/internal/app"
	"github.com/dshills/pyselect/internal/dispatcher"
	"github.com/dshills/pyselect/internal/logging"
	"github.com/dshills/pyselect/internal/renderer"
)

// ErrNotTerminal is returned by view when standard output is not a terminal.
var ErrNotTerminal = errors.New("view needs a terminal")

func viewCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Aliases:   []string{"v"},
		Usage:     "Browse a file and select blocks interactively",
		UsageText: "pyselect view [options] <file>",
		Description: "Keys: s or Ctrl-L select the next block, u and U undo and redo a selection, " +
			"Esc collapses it, j/k and PgDn/PgUp move, g/G jump, z centers and q quits. " +
			"A number typed before a key repeats it.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "line",
				Aliases: []string{"l"},
				Value:   1,
				Usage:   "Line to start on (1-based)",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return fmt.Errorf("exactly one file is required")
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
				return ErrNotTerminal
			}
			return e.runView(cCtx, cCtx.Args().First(), cCtx.Int("line")-1)
		},
	}
}

func (e *env) runView(cCtx *cli.Context, path string, line int) error {
	eng, err := e.openDocument(path)
	if err != nil {
		return err
	}
	if line > 0 && line < eng.LineCount() {
		sel, _ := initialSelection(eng, line, -1)
		eng.SetSelection(sel)
	}

	vc := e.cfg.View()
	theme, err := renderer.NewTheme(vc.SelectionColor, vc.GutterColor)
	if err != nil {
		return fmt.Errorf("view colours: %w", err)
	}
	reveal, err := dispatcher.ParseReveal(vc.Reveal)
	if err != nil {
		return fmt.Errorf("view.reveal: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	// Log lines on stderr would tear the screen.
	v := app.New(screen, eng, app.Options{
		Resolver:  e.resolver,
		Languages: e.languages,
		Renderer: []renderer.Option{
			renderer.WithTheme(theme),
			renderer.WithTabWidth(vc.TabWidth),
			renderer.WithScrollOff(vc.ScrollOff),
		},
		Reveal: reveal,
		Logger: logging.NullLogger,
	})
	v.Renderer().ScrollTo(max(line, 0), 0)

	// An interrupt ends the session like q does.
	if err := v.Run(cCtx.Context); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
