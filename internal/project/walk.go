package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/boyter/gocodewalker"
)

// WalkOptions configures Walk.
type WalkOptions struct {
	// IncludeHidden walks dot-files and dot-directories.
	IncludeHidden bool
	// Exclude lists directory names that are never descended into.
	Exclude []string
}

// Walk lists the files under root that m accepts, in lexical order.
// .gitignore and .ignore files are honoured and .git is always skipped.
// A nil matcher accepts every file.
func Walk(ctx context.Context, root string, m *LanguageMatcher, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walk %s: %w", root, ErrNotDirectory)
	}

	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.IncludeHidden = opts.IncludeHidden
	walker.ExcludeDirectory = append([]string{".git"}, opts.Exclude...)

	errChan := make(chan error, 1)
	go func() {
		errChan <- walker.Start()
	}()

	var (
		files      []string
		terminated bool
	)
	for f := range fileListQueue {
		if ctx.Err() != nil {
			// Keep draining so the walker can finish.
			if !terminated {
				walker.Terminate()
				terminated = true
			}
			continue
		}
		rel, err := filepath.Rel(root, f.Location)
		if err != nil {
			rel = f.Location
		}
		if m == nil || m.MatchPath(rel) {
			files = append(files, f.Location)
		}
	}

	walkErr := <-errChan
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	sort.Strings(files)
	return files, nil
}
