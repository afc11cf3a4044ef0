package rust

import (
	"fmt"
	"strings"
)

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota

	// Literals and names
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral
	TokenCharLiteral
	TokenByteLiteral
	TokenByteStringLiteral
	TokenLifetime
	TokenUnderscore

	// Operators
	TokenPlus                // +
	TokenMinus               // -
	TokenStar                // *
	TokenSlash               // /
	TokenPercent             // %
	TokenCaret               // ^
	TokenBang                // !
	TokenAmpersand           // &
	TokenPipe                // |
	TokenAmpAmp              // &&
	TokenPipePipe            // ||
	TokenLessLess            // <<
	TokenGreaterGreater      // >>
	TokenPlusEqual           // +=
	TokenMinusEqual          // -=
	TokenStarEqual           // *=
	TokenSlashEqual          // /=
	TokenPercentEqual        // %=
	TokenCaretEqual          // ^=
	TokenAmpEqual            // &=
	TokenPipeEqual           // |=
	TokenLessLessEqual       // <<=
	TokenGreaterGreaterEqual // >>=
	TokenEqual               // =
	TokenEqualEqual          // ==
	TokenBangEqual           // !=
	TokenGreater             // >
	TokenLess                // <
	TokenGreaterEqual        // >=
	TokenLessEqual           // <=
	TokenAt                  // @
	TokenDot                 // .
	TokenDotDot              // ..
	TokenDotDotDot           // ...
	TokenDotDotEqual         // ..=
	TokenComma               // ,
	TokenSemicolon           // ;
	TokenColon               // :
	TokenPathSep             // ::
	TokenArrow               // ->
	TokenFatArrow            // =>
	TokenPound               // #
	TokenDollar              // $
	TokenQuestion            // ?
	TokenTilde               // ~

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Strict keywords
	TokenAs
	TokenAsync
	TokenAwait
	TokenBreak
	TokenConst
	TokenContinue
	TokenCrate
	TokenDyn
	TokenElse
	TokenEnum
	TokenExtern
	TokenFalse
	TokenFn
	TokenFor
	TokenIf
	TokenImpl
	TokenIn
	TokenLet
	TokenLoop
	TokenMatch
	TokenMod
	TokenMove
	TokenMut
	TokenPub
	TokenRef
	TokenReturn
	TokenSelfValue
	TokenSelfType
	TokenStatic
	TokenStruct
	TokenSuper
	TokenTrait
	TokenTrue
	TokenType
	TokenUnsafe
	TokenUse
	TokenWhere
	TokenWhile

	// TokenReserved covers keywords reserved for future use.
	TokenReserved

	tokenKindCount
)

var tokenNames = [tokenKindCount]string{
	TokenEOF:                 "end of input",
	TokenIdent:               "identifier",
	TokenIntLiteral:          "integer literal",
	TokenFloatLiteral:        "float literal",
	TokenStringLiteral:       "string literal",
	TokenCharLiteral:         "char literal",
	TokenByteLiteral:         "byte literal",
	TokenByteStringLiteral:   "byte string literal",
	TokenLifetime:            "lifetime",
	TokenUnderscore:          "_",
	TokenPlus:                "+",
	TokenMinus:               "-",
	TokenStar:                "*",
	TokenSlash:               "/",
	TokenPercent:             "%",
	TokenCaret:               "^",
	TokenBang:                "!",
	TokenAmpersand:           "&",
	TokenPipe:                "|",
	TokenAmpAmp:              "&&",
	TokenPipePipe:            "||",
	TokenLessLess:            "<<",
	TokenGreaterGreater:      ">>",
	TokenPlusEqual:           "+=",
	TokenMinusEqual:          "-=",
	TokenStarEqual:           "*=",
	TokenSlashEqual:          "/=",
	TokenPercentEqual:        "%=",
	TokenCaretEqual:          "^=",
	TokenAmpEqual:            "&=",
	TokenPipeEqual:           "|=",
	TokenLessLessEqual:       "<<=",
	TokenGreaterGreaterEqual: ">>=",
	TokenEqual:               "=",
	TokenEqualEqual:          "==",
	TokenBangEqual:           "!=",
	TokenGreater:             ">",
	TokenLess:                "<",
	TokenGreaterEqual:        ">=",
	TokenLessEqual:           "<=",
	TokenAt:                  "@",
	TokenDot:                 ".",
	TokenDotDot:              "..",
	TokenDotDotDot:           "...",
	TokenDotDotEqual:         "..=",
	TokenComma:               ",",
	TokenSemicolon:           ";",
	TokenColon:               ":",
	TokenPathSep:             "::",
	TokenArrow:               "->",
	TokenFatArrow:            "=>",
	TokenPound:               "#",
	TokenDollar:              "$",
	TokenQuestion:            "?",
	TokenTilde:               "~",
	TokenLeftParen:           "(",
	TokenRightParen:          ")",
	TokenLeftBrace:           "{",
	TokenRightBrace:          "}",
	TokenLeftBracket:         "[",
	TokenRightBracket:        "]",
	TokenAs:                  "as",
	TokenAsync:               "async",
	TokenAwait:               "await",
	TokenBreak:               "break",
	TokenConst:               "const",
	TokenContinue:            "continue",
	TokenCrate:               "crate",
	TokenDyn:                 "dyn",
	TokenElse:                "else",
	TokenEnum:                "enum",
	TokenExtern:              "extern",
	TokenFalse:               "false",
	TokenFn:                  "fn",
	TokenFor:                 "for",
	TokenIf:                  "if",
	TokenImpl:                "impl",
	TokenIn:                  "in",
	TokenLet:                 "let",
	TokenLoop:                "loop",
	TokenMatch:               "match",
	TokenMod:                 "mod",
	TokenMove:                "move",
	TokenMut:                 "mut",
	TokenPub:                 "pub",
	TokenRef:                 "ref",
	TokenReturn:              "return",
	TokenSelfValue:           "self",
	TokenSelfType:            "Self",
	TokenStatic:              "static",
	TokenStruct:              "struct",
	TokenSuper:               "super",
	TokenTrait:               "trait",
	TokenTrue:                "true",
	TokenType:                "type",
	TokenUnsafe:              "unsafe",
	TokenUse:                 "use",
	TokenWhere:               "where",
	TokenWhile:               "while",
	TokenReserved:            "reserved keyword",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenNames[k]
	}
	return "Unknown"
}

// IsKeyword reports whether k is a strict or reserved keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenAs && k <= TokenReserved
}

// Category groups token kinds the way the lexeme dump reports them.
func (k TokenKind) Category() string {
	switch {
	case k == TokenEOF:
		return "EndOfInput"
	case k == TokenIdent, k == TokenUnderscore:
		return "Identifier"
	case k.IsKeyword():
		return "Keyword"
	case k == TokenIntLiteral, k == TokenFloatLiteral:
		return "Number"
	case k == TokenStringLiteral, k == TokenByteStringLiteral:
		return "String"
	case k == TokenCharLiteral, k == TokenByteLiteral:
		return "Character"
	case k == TokenLifetime:
		return "Lifetime"
	default:
		return "Punctuation"
	}
}

// keywords maps Rust 2018 keywords to their token kinds.
var keywords = map[string]TokenKind{
	"as":       TokenAs,
	"async":    TokenAsync,
	"await":    TokenAwait,
	"break":    TokenBreak,
	"const":    TokenConst,
	"continue": TokenContinue,
	"crate":    TokenCrate,
	"dyn":      TokenDyn,
	"else":     TokenElse,
	"enum":     TokenEnum,
	"extern":   TokenExtern,
	"false":    TokenFalse,
	"fn":       TokenFn,
	"for":      TokenFor,
	"if":       TokenIf,
	"impl":     TokenImpl,
	"in":       TokenIn,
	"let":      TokenLet,
	"loop":     TokenLoop,
	"match":    TokenMatch,
	"mod":      TokenMod,
	"move":     TokenMove,
	"mut":      TokenMut,
	"pub":      TokenPub,
	"ref":      TokenRef,
	"return":   TokenReturn,
	"self":     TokenSelfValue,
	"Self":     TokenSelfType,
	"static":   TokenStatic,
	"struct":   TokenStruct,
	"super":    TokenSuper,
	"trait":    TokenTrait,
	"true":     TokenTrue,
	"type":     TokenType,
	"unsafe":   TokenUnsafe,
	"use":      TokenUse,
	"where":    TokenWhere,
	"while":    TokenWhile,

	// Reserved
	"abstract": TokenReserved,
	"become":   TokenReserved,
	"box":      TokenReserved,
	"do":       TokenReserved,
	"final":    TokenReserved,
	"macro":    TokenReserved,
	"override": TokenReserved,
	"priv":     TokenReserved,
	"typeof":   TokenReserved,
	"unsized":  TokenReserved,
	"virtual":  TokenReserved,
	"yield":    TokenReserved,
	"try":      TokenReserved,
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string // exact source text

	// Suffix is the type suffix of a numeric literal (u8, i32, f64, ...).
	Suffix string

	// Value is the decoded value of string and char literals, the text of
	// a numeric literal without its suffix, and the name of an identifier
	// (without the r# prefix of raw identifiers).
	Value string

	Pos Position
	End Position
}

// String formats the token the way the lexeme dump prints it.
func (t Token) String() string {
	return fmt.Sprintf("%-16s %4d  %s", t.Kind.Category(), t.Pos.Offset, t.Lexeme)
}

// FormatTokens renders a token dump: a count header, one line per token,
// and a trailing end-of-input line.
func FormatTokens(tokens []Token) string {
	var sb strings.Builder
	count := 0
	end := 0
	for _, tok := range tokens {
		if tok.Kind == TokenEOF {
			end = tok.Pos.Offset
			continue
		}
		count++
	}
	fmt.Fprintf(&sb, "Lexemes found: %d\n", count)
	for _, tok := range tokens {
		if tok.Kind == TokenEOF {
			continue
		}
		sb.WriteString(tok.String())
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%-16s %4d  <EOI>", "EndOfInput", end)
	return sb.String()
}

// Position represents a position in source code.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

// Span represents a source code location span. End is exclusive.
type Span struct {
	Start Position
	End   Position
}
