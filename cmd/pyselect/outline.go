package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v2"

	"github.com/dshills/pyselect/internal/project"
	"github.com/dshills/pyselect/internal/protocol"
)

var outlineFormats = []string{formatText, formatJSON}

type outlineOptions struct {
	paths   []string
	depth   int
	hidden  bool
	workers int
	format  string
}

func outlineCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "outline",
		Aliases:   []string{"o"},
		Usage:     "List the blocks of Python files",
		UsageText: "pyselect outline [options] [file|dir]...",
		Description: "List the consecutive blocks of each file, or of every Python file under a directory. " +
			"Directory walks honour .gitignore and .ignore files. The default target is the current directory.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "Levels of nested blocks to list (default from config)",
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "Include dot-files and dot-directories",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Files outlined in parallel (default from config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   formatText,
				Usage:   "Output format. Allowed values are: " + strings.Join(outlineFormats, ", "),
			},
		},
		Action: func(cCtx *cli.Context) error {
			format := cCtx.String("format")
			if !slices.Contains(outlineFormats, format) {
				return fmt.Errorf("invalid format %s.  Must be one of %s", format, strings.Join(outlineFormats, ", "))
			}
			oc := e.cfg.Outline()
			opts := outlineOptions{
				paths:   cCtx.Args().Slice(),
				depth:   oc.MaxDepth,
				hidden:  oc.IncludeHidden || cCtx.Bool("hidden"),
				workers: oc.Workers,
				format:  format,
			}
			if cCtx.IsSet("depth") {
				opts.depth = cCtx.Int("depth")
			}
			if cCtx.IsSet("workers") {
				opts.workers = cCtx.Int("workers")
			}
			if len(opts.paths) == 0 {
				opts.paths = []string{"."}
			}
			return e.runOutline(cCtx, opts)
		},
	}
}

func (e *env) runOutline(cCtx *cli.Context, opts outlineOptions) error {
	failed := 0
	for _, path := range opts.paths {
		files, err := e.outlinePath(cCtx, path, opts)
		if err != nil {
			return err
		}
		for _, fo := range files {
			if fo.Err != nil {
				e.logger.Warn("outline %s: %v", fo.Path, fo.Err)
				failed++
				continue
			}
			if err := writeOutline(e.stdout, fo, opts.format); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be outlined", failed)
	}
	return nil
}

func (e *env) outlinePath(cCtx *cli.Context, path string, opts outlineOptions) ([]project.FileOutline, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []project.FileOutline{project.OutlineFile(path, e.resolver, opts.depth)}, nil
	}
	return project.OutlineTree(cCtx.Context, path, e.languages, project.Options{
		Walk: project.WalkOptions{
			IncludeHidden: opts.hidden,
			Exclude:       e.cfg.Outline().Exclude,
		},
		MaxDepth: opts.depth,
		Workers:  opts.workers,
		Resolver: e.resolver,
	})
}

// writeOutline prints one file's blocks. Text output indents nested
// blocks and uses 1-based lines; JSON output is one object per file.
func writeOutline(w io.Writer, fo project.FileOutline, format string) error {
	if format == formatJSON {
		out, err := sjson.Set(`{}`, "path", fo.Path)
		if err != nil {
			return err
		}
		if out, err = sjson.SetRaw(out, "blocks", protocol.OutlineJSON(fo.Blocks)); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}

	var b strings.Builder
	b.WriteString(fo.Path)
	b.WriteByte('\n')
	project.Visit(fo.Blocks, func(blk project.Block) {
		fmt.Fprintf(&b, "%s%d-%d %s %s\n",
			strings.Repeat("  ", blk.Depth), blk.Range.StartLine+1, blk.Range.EndLine+1, blk.Kind, blk.Header)
	})
	_, err := io.WriteString(w, b.String())
	return err
}
