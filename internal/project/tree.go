package project

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dshills/pyselect/internal/block"
)

// Options configures OutlineTree.
type Options struct {
	Walk WalkOptions
	// MaxDepth is the number of block levels listed per file.
	MaxDepth int
	// Workers is the number of files outlined in parallel.
	Workers int
	// Resolver computes the blocks; nil uses the default resolver.
	Resolver *block.Resolver
}

// OutlineTree walks root and outlines every matching file. Binary files
// are skipped; other read failures are reported in FileOutline.Err.
// Results are ordered by path.
func OutlineTree(ctx context.Context, root string, m *LanguageMatcher, opts Options) ([]FileOutline, error) {
	files, err := Walk(ctx, root, m, opts.Walk)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan string, len(files))
	results := make(chan FileOutline, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- OutlineFile(path, opts.Resolver, opts.MaxDepth)
			}
		}()
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]FileOutline, 0, len(files))
	for fo := range results {
		if errors.Is(fo.Err, ErrBinaryFile) {
			continue
		}
		out = append(out, fo)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
