package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v2"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/dispatcher"
	"github.com/dshills/pyselect/internal/dispatcher/handler"
	"github.com/dshills/pyselect/internal/dispatcher/handlers/blockselect"
	"github.com/dshills/pyselect/internal/engine"
	"github.com/dshills/pyselect/internal/engine/cursor"
)

// Output formats of the select command.
const (
	formatText    = "text"
	formatJSON    = "json"
	formatContent = "text-content"
)

var selectFormats = []string{formatText, formatJSON, formatContent}

type selectOptions struct {
	path   string
	line   int // 1-based
	end    int // 1-based, 0 for a cursor
	repeat int
	format string
	strict bool
}

func selectCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Aliases:   []string{"s"},
		Usage:     "Resolve the block at a line of a file",
		UsageText: "pyselect select [options] <file|->",
		Description: "Resolve the block at --line, or the block following the lines --line to --end, " +
			"and print the resulting range. Lines are 1-based on the command line and in text output; " +
			"JSON output uses 0-based lines like the server protocol. " +
			"When nothing can be selected nothing is printed and the exit code is 0, or 3 with --strict.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "line",
				Aliases:  []string{"l"},
				Usage:    "Cursor line, or first selected line with --end (1-based)",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Last selected line (1-based)",
			},
			&cli.IntFlag{
				Name:    "repeat",
				Aliases: []string{"r"},
				Value:   1,
				Usage:   "Number of times to apply the selection",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   formatText,
				Usage:   "Output format. Allowed values are: " + strings.Join(selectFormats, ", "),
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit with status 3 when nothing can be selected",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return fmt.Errorf("exactly one file is required")
			}
			format := cCtx.String("format")
			if !slices.Contains(selectFormats, format) {
				return fmt.Errorf("invalid format %s.  Must be one of %s", format, strings.Join(selectFormats, ", "))
			}
			return e.runSelect(selectOptions{
				path:   cCtx.Args().First(),
				line:   cCtx.Int("line"),
				end:    cCtx.Int("end"),
				repeat: cCtx.Int("repeat"),
				format: format,
				strict: cCtx.Bool("strict"),
			})
		},
	}
}

func (e *env) runSelect(opts selectOptions) error {
	if opts.line < 1 {
		return fmt.Errorf("--line must be at least 1")
	}
	if opts.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}

	eng, err := e.openDocument(opts.path)
	if err != nil {
		return err
	}

	sel, err := initialSelection(eng, opts.line-1, opts.end-1)
	if err != nil {
		return err
	}
	eng.SetSelection(sel)

	d := e.newDispatcher(eng)
	result := d.Dispatch(handler.Action{Name: blockselect.ActionSelect, Count: opts.repeat, Source: handler.SourceCLI})
	switch result.Status {
	case handler.StatusError:
		return result.Error
	case handler.StatusNoOp:
		e.logger.Info("nothing selected: %s", result.Message)
		if opts.strict {
			return cli.Exit("", exitNoSelection)
		}
		return nil
	}
	if result.Range == nil {
		return errors.New("select returned no range")
	}

	return writeRange(e.stdout, eng, *result.Range, opts.format)
}

// initialSelection builds the selection the command starts from. A negative
// end means a cursor on line.
func initialSelection(eng *engine.Engine, line, end int) (cursor.Selection, error) {
	if line >= eng.LineCount() {
		return cursor.Selection{}, fmt.Errorf("--line %d is past the last line %d", line+1, eng.LineCount())
	}
	if end < 0 {
		return cursor.NewCursorSelection(cursor.Point{Line: line}), nil
	}
	if end < line {
		return cursor.Selection{}, fmt.Errorf("--end %d is before --line %d", end+1, line+1)
	}
	if end >= eng.LineCount() {
		return cursor.Selection{}, fmt.Errorf("--end %d is past the last line %d", end+1, eng.LineCount())
	}
	return cursor.LineSelection(block.Range{StartLine: line, EndLine: end}, eng.LineLen(end)), nil
}

func writeRange(w io.Writer, eng *engine.Engine, r block.Range, format string) error {
	var err error
	switch format {
	case formatJSON:
		out := []byte(`{}`)
		for _, kv := range []struct {
			path  string
			value any
		}{
			{"path", eng.Path()},
			{"startLine", r.StartLine},
			{"endLine", r.EndLine},
			{"endColumn", eng.LineLen(r.EndLine)},
		} {
			if out, err = sjson.SetBytes(out, kv.path, kv.value); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
	case formatContent:
		snap := eng.Snapshot()
		_, err = fmt.Fprintln(w, strings.Join(snap.TextLines(r.StartLine, r.EndLine), "\n"))
	default:
		_, err = fmt.Fprintf(w, "%d-%d\n", r.StartLine+1, r.EndLine+1)
	}
	return err
}

// openDocument loads path, or standard input for "-", into an engine.
func (e *env) openDocument(path string) (*engine.Engine, error) {
	var r io.Reader = e.stdin
	vc := e.cfg.View()
	opts := []engine.Option{
		engine.WithTabWidth(vc.TabWidth),
		engine.WithMaxHistoryEntries(vc.HistorySize),
	}

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		opts = append(opts, engine.WithPath(path), engine.WithLanguageID(e.languages.LanguageID(path)))
	} else {
		opts = append(opts, engine.WithLanguageID("python"))
	}

	eng, err := engine.NewFromReader(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	e.logger.Debug("loaded %s: %d lines", path, eng.LineCount())
	return eng, nil
}

// newDispatcher returns a dispatcher with the block selection commands
// registered for eng.
func (e *env) newDispatcher(eng *engine.Engine) *dispatcher.Dispatcher {
	d := dispatcher.New(dispatcher.DefaultConfig())
	d.SetEngine(eng)
	d.SetResolver(e.resolver)
	d.SetLanguageGuard(e.languages)
	d.SetLogger(e.logger)
	blockselect.Register(d)
	return d
}
