package handler

import (
	"fmt"

	"github.com/dshills/pyselect/internal/block"
)

// ResultStatus is the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK means the command ran and may have changed the selection.
	StatusOK ResultStatus = iota
	// StatusNoOp means nothing changed. Message carries the reason.
	StatusNoOp
	// StatusError means the command failed. Error is set.
	StatusError
)

// String returns the status as shown in logs and the status line.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ScrollTarget is a position the view should bring into sight.
type ScrollTarget struct {
	Line   int
	Column int
	// Center asks for the line to be centered whatever the reveal policy.
	Center bool
}

// Result is the outcome of handling an action.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Range is the last block selected, for select commands.
	Range *block.Range

	// Steps counts how many times the selection grew. It can be less than
	// the action's count when the document ran out of blocks.
	Steps int

	// Scroll is nil when the view may stay where it is.
	Scroll *ScrollTarget
}

// IsOK reports whether the command succeeded.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsNoOp reports whether the command changed nothing.
func (r Result) IsNoOp() bool {
	return r.Status == StatusNoOp
}

// IsError reports whether the command failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success returns an OK result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage returns an OK result with a status message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// Selected returns an OK result for a selection that grew to r.
func Selected(r block.Range) Result {
	return Result{Status: StatusOK, Range: &r, Steps: 1}
}

// NoOp returns a result for a command that changed nothing.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage returns a no-op result with the reason.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error returns a failed result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf returns a failed result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// WithMessage returns a copy of the result with msg.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithSteps returns a copy of the result with the growth count set.
func (r Result) WithSteps(n int) Result {
	r.Steps = n
	return r
}

// WithScrollTo returns a copy of the result with a scroll target.
func (r Result) WithScrollTo(line, col int, center bool) Result {
	r.Scroll = &ScrollTarget{Line: line, Column: col, Center: center}
	return r
}
