package rs2ts

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/opinionated/rs2ts/config"
	"github.com/opinionated/rs2ts/rust"
	"github.com/opinionated/rs2ts/ts"
)

// ErrorKind classifies a transpilation failure.
type ErrorKind uint8

const (
	// ErrLex is a character sequence that is not a Rust token.
	ErrLex ErrorKind = iota
	// ErrParse is a token stream that does not match the grammar, or a
	// declaration the checker rejects.
	ErrParse
	// ErrUnsupportedConstruct is valid Rust outside the translated subset.
	ErrUnsupportedConstruct
	// ErrConfigNotImplemented is a configuration value reserved for
	// future use.
	ErrConfigNotImplemented
	// ErrInvalidConfig is a configuration that fails validation.
	ErrInvalidConfig
	// ErrInternal is a generator fault. It never results from user input.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLex:
		return "LexError"
	case ErrParse:
		return "ParseError"
	case ErrUnsupportedConstruct:
		return "UnsupportedConstruct"
	case ErrConfigNotImplemented:
		return "ConfigNotImplemented"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is the single error type returned by Transpile and the stage
// helpers. Offset, Line and Column are zero for errors without a source
// position.
type Error struct {
	Kind    ErrorKind
	Offset  int // byte offset, 0-based
	Line    int // 1-based
	Column  int // 1-based, in runes
	Message string
	Source  string // transpiled input, for FormatWithContext
	Err     error  // underlying stage error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// Unwrap returns the underlying stage error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FormatWithContext returns the error message with the offending source
// line and a caret under the error position.
func (e *Error) FormatWithContext() string {
	if e.Source == "" || e.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Line > len(lines) {
		return e.Error()
	}

	line := strings.TrimSuffix(lines[e.Line-1], "\r")
	col := max(e.Column, 1)
	col = min(col, utf8.RuneCountInString(line)+1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "error[%s]: %s\n", e.Kind, e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", e.Line, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", e.Line, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

func (e *Error) at(pos rust.Position) *Error {
	e.Offset = pos.Offset
	e.Line = pos.Line
	e.Column = pos.Column
	return e
}

// wrap converts a stage error into an *Error.
func wrap(err error, source string) *Error {
	var (
		lexErr         *rust.LexError
		parseErr       *rust.ParseError
		unsupportedErr *rust.UnsupportedError
		tsErr          *ts.Error
		out            *Error
	)
	switch {
	case errors.As(err, &out):
		return out
	case errors.As(err, &lexErr):
		e := &Error{Kind: ErrLex, Message: lexErr.Message, Source: source, Err: err}
		return e.at(lexErr.Pos)
	case errors.As(err, &parseErr):
		e := &Error{Kind: ErrParse, Message: parseErr.Message, Source: source, Err: err}
		return e.at(parseErr.Token.Pos)
	case errors.As(err, &unsupportedErr):
		e := &Error{Kind: ErrUnsupportedConstruct, Message: unsupportedErr.Construct, Source: source, Err: err}
		return e.at(unsupportedErr.Token.Pos)
	case errors.As(err, &tsErr):
		e := &Error{Kind: ErrInternal, Message: tsErr.Message, Source: source, Err: err}
		if tsErr.Span != nil {
			e.at(tsErr.Span.Start)
		}
		return e
	case errors.Is(err, config.ErrNotImplemented):
		return &Error{Kind: ErrConfigNotImplemented, Message: err.Error(), Err: err}
	case errors.Is(err, config.ErrInvalid):
		return &Error{Kind: ErrInvalidConfig, Message: err.Error(), Err: err}
	default:
		return &Error{Kind: ErrInternal, Message: err.Error(), Source: source, Err: err}
	}
}
