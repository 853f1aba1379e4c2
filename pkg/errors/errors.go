// Package errors provides the coded errors planrep returns for bad input.
//
// The graph packages report contract violations by panicking. Everything
// that reads user input (graph files, route scripts, command-line flags)
// returns an [*Error] instead, so callers can branch on a machine-readable
// [Code] however deep the error was raised:
//
//	err := errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", id)
//	err = errors.Context(err, "graph %s", path)
//	errors.Is(err, errors.ErrCodeInvalidGraph) // true
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidGraph      Code = "INVALID_GRAPH"
	ErrCodeInvalidScript     Code = "INVALID_SCRIPT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeEdgeNotFound Code = "EDGE_NOT_FOUND"

	// An expansion failed its consistency check after an edit.
	ErrCodeInconsistent Code = "INCONSISTENT"
	// The rotation of a component does not describe a planar embedding.
	ErrCodeNotPlanar Code = "NOT_PLANAR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a [Code] alongside its message and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Context wraps err with a message while keeping its code, so a step or
// file name can be prefixed without losing the category. Errors without a
// code are reported as ErrCodeInternal.
func Context(err error, format string, args ...any) *Error {
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Wrap(code, err, format, args...)
}

// Is reports whether the outermost [*Error] in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost [*Error] in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
