package project

import (
	"fmt"
	"os"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/engine/buffer"
)

// DefaultMaxFileSize is the largest file ReadDocument accepts.
const DefaultMaxFileSize int64 = 8 << 20

// ReadDocument loads a text file into a buffer snapshot. Byte order marks
// are honoured and UTF-16 is decoded. Files larger than maxSize (or
// DefaultMaxFileSize when maxSize <= 0) and binary files are rejected.
func ReadDocument(path string, maxSize int64) (*buffer.Snapshot, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isBinary(data) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}

	text, err := buffer.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buffer.NewBufferFromString(text).Snapshot(), nil
}

// FileOutline is the outline of one file.
type FileOutline struct {
	Path   string
	Blocks []Block
	// Err is set when the file could not be read.
	Err error
}

// OutlineFile reads and outlines a single file.
func OutlineFile(path string, r *block.Resolver, maxDepth int) FileOutline {
	snap, err := ReadDocument(path, 0)
	if err != nil {
		return FileOutline{Path: path, Err: err}
	}
	return FileOutline{Path: path, Blocks: Outline(snap, r, maxDepth)}
}
