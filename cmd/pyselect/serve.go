package main

import (
	"github.com/urfave/cli/v2"

	"github.com/dshills/pyselect/internal/project"
	"github.com/dshills/pyselect/internal/protocol"
)

func serveCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Answer JSON-lines requests on standard input",
		UsageText: "pyselect serve [options]",
		Description: "Read one JSON request per line from standard input and write one response per line " +
			"to standard output. Methods: resolve, classify, outline and shutdown.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-line-size",
				Value: protocol.DefaultMaxLineSize,
				Usage: "Largest accepted request line in bytes",
			},
		},
		Action: func(cCtx *cli.Context) error {
			cache, err := protocol.NewDocumentCache(e.cfg.Server().CacheSize, project.DefaultMaxFileSize)
			if err != nil {
				return err
			}
			srv, err := protocol.NewServer(
				protocol.WithResolver(e.resolver),
				protocol.WithLanguageGuard(e.languages),
				protocol.WithCache(cache),
				protocol.WithLogger(e.logger),
				protocol.WithMaxLineSize(cCtx.Int("max-line-size")),
				protocol.WithOutlineDepth(e.cfg.Outline().MaxDepth),
			)
			if err != nil {
				return err
			}

			e.logger.Info("serving on stdin")
			err = srv.Serve(cCtx.Context, e.stdin, e.stdout)
			e.logger.Info("served %d requests, %d failed", srv.Requests(), srv.Failures())
			return err
		},
	}
}
