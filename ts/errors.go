// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"fmt"

	"github.com/opinionated/rs2ts/rust"
)

// ErrorKind categorizes TypeScript generation errors.
type ErrorKind uint8

const (
	// ErrInternalError indicates an AST shape the generator has no rule for.
	ErrInternalError ErrorKind = iota

	// ErrUncheckedModule indicates the module was not passed through rust.Check.
	ErrUncheckedModule
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInternalError:
		return "InternalError"
	case ErrUncheckedModule:
		return "UncheckedModule"
	default:
		return "Unknown"
	}
}

// Error represents a TypeScript generation error. Generation errors are
// never caused by user input that the checker accepted.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Span optionally identifies the source location.
	Span *rust.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span != nil {
		return fmt.Sprintf("ts %s at %d:%d: %s", e.Kind, e.Span.Start.Line, e.Span.Start.Column, e.Message)
	}
	return fmt.Sprintf("ts %s: %s", e.Kind, e.Message)
}

func internalError(node rust.Node, format string, args ...any) *Error {
	err := &Error{Kind: ErrInternalError, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		span := node.Pos()
		err.Span = &span
	}
	return err
}
