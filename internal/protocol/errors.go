package protocol

import (
	"errors"
	"fmt"
)

// Standard errors returned by the server.
var (
	// ErrShutdown indicates the client asked the server to stop.
	ErrShutdown = errors.New("protocol: shutdown requested")

	// ErrNoDocument indicates a request named neither a path nor a text.
	ErrNoDocument = errors.New("protocol: request has no path or text")

	// ErrLineTooLong indicates a request line exceeded the read limit.
	ErrLineTooLong = errors.New("protocol: request line too long")
)

// Error codes, following JSON-RPC 2.0.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// RPCError is an error reported to the client.
type RPCError struct {
	Code    int
	Message string
	err     error
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *RPCError) Unwrap() error {
	return e.err
}

func newError(code int, err error) *RPCError {
	return &RPCError{Code: code, Message: err.Error(), err: err}
}

func errorf(code int, format string, args ...any) *RPCError {
	return newError(code, fmt.Errorf(format, args...))
}
