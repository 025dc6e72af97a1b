// Package buffer provides the line-indexed text buffer that block selection
// runs against.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line ending detection and normalization
//   - BOM-aware decoding of UTF-8 and UTF-16 input
//   - Per-line indentation and blankness, computed once per revision
//   - Read-only snapshots that satisfy block.Buffer
//   - Revision tracking so hosts can tell when a snapshot is stale
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("def f():\n    pass\n")
//
//	// Take a consistent view and resolve against it
//	snap := buf.Snapshot()
//	rng, err := block.NewResolver().Resolve(snap, block.Cursor(0))
//
// Position Types:
//
//   - Point: Line and column position (0-indexed, column in bytes)
//   - PointRange: a half-open span between two points
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock. A Snapshot never
// changes after it is taken and may be shared between goroutines.
package buffer
