package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dshills/pyselect/internal/engine"
	"github.com/dshills/pyselect/internal/script"
)

func scriptCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "script",
		Usage:     "Run a Lua script against a file",
		UsageText: "pyselect script [options] <script.lua> [file|-]",
		Description: "Run a sandboxed Lua script with the blocksel module bound to the file " +
			"(an empty document when no file is given). Values the script returns are printed as a JSON array.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "line",
				Aliases: []string{"l"},
				Value:   1,
				Usage:   "Initial cursor line, or first selected line with --end (1-based)",
			},
			&cli.IntFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Last initially selected line (1-based)",
			},
			&cli.StringFlag{
				Name:  "call",
				Usage: "Global function to call after the script has run",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: script.DefaultExecutionTimeout,
				Usage: "Limit on each script run",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() < 1 || cCtx.NArg() > 2 {
				return fmt.Errorf("a script and at most one file are required")
			}
			eng := engine.New()
			if cCtx.NArg() == 2 {
				var err error
				if eng, err = e.openDocument(cCtx.Args().Get(1)); err != nil {
					return err
				}
			}
			if line := cCtx.Int("line") - 1; line >= 0 && line < eng.LineCount() {
				sel, err := initialSelection(eng, line, cCtx.Int("end")-1)
				if err != nil {
					return err
				}
				eng.SetSelection(sel)
			}

			state, err := script.NewState(
				script.WithExecutionTimeout(cCtx.Duration("timeout")),
				script.WithOutput(e.stdout),
			)
			if err != nil {
				return err
			}
			defer state.Close()
			script.NewHost(eng, e.resolver, e.logger).Install(state)

			results, err := state.RunFile(cCtx.Context, cCtx.Args().First())
			if err != nil {
				return err
			}
			if fn := cCtx.String("call"); fn != "" {
				if results, err = state.Call(cCtx.Context, fn); err != nil {
					return err
				}
			}
			return e.writeResults(results)
		},
	}
}

func (e *env) writeResults(results []any) error {
	if len(results) == 0 {
		return nil
	}
	out, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n", out)
	return err
}
