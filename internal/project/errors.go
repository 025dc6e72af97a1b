package project

import "errors"

// Standard errors returned by the project package.
var (
	// ErrNotDirectory indicates the walk root is a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrFileTooLarge indicates the file exceeds the maximum size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrBinaryFile indicates the file appears to be binary.
	ErrBinaryFile = errors.New("binary file")

	// ErrBadPattern indicates a malformed language glob.
	ErrBadPattern = errors.New("invalid path pattern")
)
