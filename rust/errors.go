package rust

import "fmt"

// LexErrorKind classifies lexical errors.
type LexErrorKind uint8

const (
	// LexUnexpectedChar is a character that cannot start any token.
	LexUnexpectedChar LexErrorKind = iota
	// LexUnterminatedString is a string literal without a closing quote.
	LexUnterminatedString
	// LexUnterminatedChar is a char literal without a closing quote.
	LexUnterminatedChar
	// LexUnterminatedComment is a block comment without a matching */.
	LexUnterminatedComment
	// LexInvalidEscape is an unknown or out-of-range escape sequence.
	LexInvalidEscape
	// LexMalformedNumber is a numeric literal with bad digits or suffix.
	LexMalformedNumber
)

func (k LexErrorKind) String() string {
	switch k {
	case LexUnexpectedChar:
		return "unexpected character"
	case LexUnterminatedString:
		return "unterminated string"
	case LexUnterminatedChar:
		return "unterminated char"
	case LexUnterminatedComment:
		return "unterminated comment"
	case LexInvalidEscape:
		return "invalid escape"
	case LexMalformedNumber:
		return "malformed number"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", k)
	}
}

// LexError is returned by the lexer for input it cannot tokenize.
type LexError struct {
	Kind    LexErrorKind
	Pos     Position
	Message string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError represents a syntax error in the token stream.
type ParseError struct {
	Message  string
	Expected string // construct the parser was looking for, if any
	Token    Token  // offending token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Message)
}

// UnsupportedError reports a recognised Rust construct that lies outside
// the supported subset.
type UnsupportedError struct {
	Construct string
	Token     Token
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported construct: %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Construct)
}
