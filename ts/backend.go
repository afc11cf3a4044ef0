// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"fmt"

	"github.com/opinionated/rs2ts/rust"
)

// Options configures TypeScript code generation.
type Options struct {
	// WrapperTypes annotates primitives with the boxed names Number,
	// Boolean and String instead of number, boolean and string.
	WrapperTypes bool

	// ExportPublic prefixes pub items with export.
	ExportPublic bool
}

// DefaultOptions returns the options used by rs2ts.Transpile.
func DefaultOptions() Options {
	return Options{
		ExportPublic: true,
	}
}

// Compile generates TypeScript source code from a checked Rust module.
// The module must have passed rust.Check; an error is only returned for an
// AST the generator has no rule for and indicates a defect.
func Compile(module *rust.Module, options Options) (string, error) {
	if module == nil {
		return "", fmt.Errorf("ts: %w", &Error{Kind: ErrInternalError, Message: "nil module"})
	}

	w := newWriter(module, &options)
	if err := w.writeModule(); err != nil {
		return "", fmt.Errorf("ts: %w", err)
	}
	return w.String(), nil
}
