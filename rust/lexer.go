package rust

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes Rust source code.
//
// Tokens are produced lazily by Next; Tokenize drains the lexer into a
// slice terminated by exactly one TokenEOF.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  Position
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize returns all tokens from the source.
func (l *Lexer) Tokenize() ([]Token, error) {
	// Estimate ~1 token per 4 characters of source.
	estTokens := len(l.source) / 4
	if estTokens < 16 {
		estTokens = 16
	}
	tokens := make([]Token, 0, estTokens)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. Once the input is exhausted every call
// returns a TokenEOF positioned at the end of the source.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	l.start = l.position()
	if l.isAtEnd() {
		return Token{Kind: TokenEOF, Pos: l.start, End: l.start}, nil
	}
	return l.scanToken()
}

func (l *Lexer) skipTrivia() error {
	for !l.isAtEnd() {
		r := l.peek()
		switch {
		case isWhitespace(r):
			l.advance()
		case r == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekNext() == '*':
			if err := l.blockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) blockComment() error {
	open := l.position()
	l.advance()
	l.advance()
	depth := 1
	for depth > 0 {
		if l.isAtEnd() {
			return &LexError{Kind: LexUnterminatedComment, Pos: open, Message: "unterminated block comment"}
		}
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
	return nil
}

func (l *Lexer) scanToken() (Token, error) {
	r := l.advance()

	switch r {
	// Single-character tokens
	case '(':
		return l.token(TokenLeftParen), nil
	case ')':
		return l.token(TokenRightParen), nil
	case '{':
		return l.token(TokenLeftBrace), nil
	case '}':
		return l.token(TokenRightBrace), nil
	case '[':
		return l.token(TokenLeftBracket), nil
	case ']':
		return l.token(TokenRightBracket), nil
	case ',':
		return l.token(TokenComma), nil
	case ';':
		return l.token(TokenSemicolon), nil
	case '@':
		return l.token(TokenAt), nil
	case '#':
		return l.token(TokenPound), nil
	case '$':
		return l.token(TokenDollar), nil
	case '?':
		return l.token(TokenQuestion), nil
	case '~':
		return l.token(TokenTilde), nil

	// Operators that could be one, two or three characters
	case ':':
		return l.either(':', TokenPathSep, TokenColon), nil
	case '.':
		switch {
		case l.match('.'):
			if l.match('.') {
				return l.token(TokenDotDotDot), nil
			}
			return l.either('=', TokenDotDotEqual, TokenDotDot), nil
		default:
			return l.token(TokenDot), nil
		}
	case '=':
		if l.match('>') {
			return l.token(TokenFatArrow), nil
		}
		return l.either('=', TokenEqualEqual, TokenEqual), nil
	case '!':
		return l.either('=', TokenBangEqual, TokenBang), nil
	case '+':
		return l.either('=', TokenPlusEqual, TokenPlus), nil
	case '-':
		if l.match('>') {
			return l.token(TokenArrow), nil
		}
		return l.either('=', TokenMinusEqual, TokenMinus), nil
	case '*':
		return l.either('=', TokenStarEqual, TokenStar), nil
	case '/':
		return l.either('=', TokenSlashEqual, TokenSlash), nil
	case '%':
		return l.either('=', TokenPercentEqual, TokenPercent), nil
	case '^':
		return l.either('=', TokenCaretEqual, TokenCaret), nil
	case '<':
		if l.match('<') {
			return l.either('=', TokenLessLessEqual, TokenLessLess), nil
		}
		return l.either('=', TokenLessEqual, TokenLess), nil
	case '>':
		if l.match('>') {
			return l.either('=', TokenGreaterGreaterEqual, TokenGreaterGreater), nil
		}
		return l.either('=', TokenGreaterEqual, TokenGreater), nil
	case '&':
		if l.match('&') {
			return l.token(TokenAmpAmp), nil
		}
		return l.either('=', TokenAmpEqual, TokenAmpersand), nil
	case '|':
		if l.match('|') {
			return l.token(TokenPipePipe), nil
		}
		return l.either('=', TokenPipeEqual, TokenPipe), nil

	// Literals
	case '"':
		return l.str(TokenStringLiteral)
	case '\'':
		if isIdentStart(l.peek()) && l.peekNext() != '\'' {
			return l.lifetime(), nil
		}
		return l.char(TokenCharLiteral)

	// Prefixed literals and raw identifiers
	case 'b':
		switch {
		case l.match('\''):
			return l.char(TokenByteLiteral)
		case l.match('"'):
			return l.str(TokenByteStringLiteral)
		case l.peek() == 'r' && l.rawStringAhead(l.pos+1):
			l.advance()
			return l.rawString(TokenByteStringLiteral)
		}
		return l.identifier()
	case 'r':
		if l.rawStringAhead(l.pos) {
			return l.rawString(TokenStringLiteral)
		}
		if l.peek() == '#' && isIdentStart(l.peekNext()) {
			return l.rawIdentifier()
		}
		return l.identifier()

	default:
		if isDigit(r) {
			return l.number()
		}
		if isIdentStart(r) {
			return l.identifier()
		}
	}

	return Token{}, &LexError{
		Kind:    LexUnexpectedChar,
		Pos:     l.start,
		Message: fmt.Sprintf("unexpected character %q", r),
	}
}

// either consumes next and returns matched, or returns otherwise.
func (l *Lexer) either(next rune, matched, otherwise TokenKind) Token {
	if l.match(next) {
		return l.token(matched)
	}
	return l.token(otherwise)
}

func (l *Lexer) identifier() (Token, error) {
	for isIdentContinue(l.peek()) {
		l.advance()
	}

	text := l.source[l.start.Offset:l.pos]
	if text == "_" {
		return l.token(TokenUnderscore), nil
	}
	if kind, ok := keywords[text]; ok {
		return l.token(kind), nil
	}
	tok := l.token(TokenIdent)
	tok.Value = text
	return tok, nil
}

// rawIdentifier scans r#name. The 'r' has been consumed.
func (l *Lexer) rawIdentifier() (Token, error) {
	l.advance() // '#'
	nameStart := l.pos
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	name := l.source[nameStart:l.pos]
	switch name {
	case "_", "crate", "self", "Self", "super":
		return Token{}, &LexError{
			Kind:    LexUnexpectedChar,
			Pos:     l.start,
			Message: fmt.Sprintf("%q cannot be a raw identifier", name),
		}
	}
	tok := l.token(TokenIdent)
	tok.Value = name
	return tok, nil
}

func (l *Lexer) lifetime() Token {
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenLifetime)
	tok.Value = l.source[l.start.Offset+1 : l.pos]
	return tok
}

var integerSuffixes = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
}

var floatSuffixes = map[string]bool{
	"f32": true, "f64": true,
}

// number scans an integer or float literal. The first digit has been
// consumed. Token.Value receives the literal text without its suffix.
func (l *Lexer) number() (Token, error) {
	kind := TokenIntLiteral
	radix := 10
	if l.source[l.start.Offset] == '0' {
		switch l.peek() {
		case 'x':
			radix = 16
		case 'o':
			radix = 8
		case 'b':
			radix = 2
		}
		if radix != 10 {
			l.advance()
		}
	}

	if radix != 10 {
		if err := l.radixDigits(radix); err != nil {
			return Token{}, err
		}
	} else {
		l.decimalDigits()

		// "1." is a float unless the dot starts a range, a field access
		// or a method call.
		next := l.peekNext()
		if l.peek() == '.' && next != '.' && next != '_' && !isIdentStart(next) {
			l.advance()
			kind = TokenFloatLiteral
			if isDigit(l.peek()) {
				l.decimalDigits()
			}
		}

		if l.peek() == 'e' || l.peek() == 'E' {
			if err := l.exponent(); err != nil {
				return Token{}, err
			}
			kind = TokenFloatLiteral
		}
	}

	digitsEnd := l.pos
	suffix := ""
	if isIdentStart(l.peek()) {
		suffixStart := l.pos
		for isIdentContinue(l.peek()) {
			l.advance()
		}
		suffix = l.source[suffixStart:l.pos]
		switch {
		case integerSuffixes[suffix]:
			if kind == TokenFloatLiteral {
				return Token{}, l.malformed("integer suffix %q on a float literal", suffix)
			}
		case floatSuffixes[suffix]:
			if radix != 10 {
				return Token{}, l.malformed("float suffix %q on a base %d literal", suffix, radix)
			}
			kind = TokenFloatLiteral
		default:
			return Token{}, l.malformed("invalid suffix %q for number literal", suffix)
		}
	}

	tok := l.token(kind)
	tok.Suffix = suffix
	tok.Value = l.source[l.start.Offset:digitsEnd]
	return tok, nil
}

func (l *Lexer) radixDigits(radix int) error {
	digits := 0
	for {
		c := l.peek()
		if c == '_' {
			l.advance()
			continue
		}
		if digitValue(c) < radix {
			digits++
			l.advance()
			continue
		}
		if isDigit(c) {
			return l.malformed("invalid digit %q in base %d literal", c, radix)
		}
		if c == '.' && isDigit(l.peekNext()) {
			return l.malformed("base %d float literal is not supported", radix)
		}
		break
	}
	if digits == 0 {
		return l.malformed("no valid digits found for number")
	}
	return nil
}

func (l *Lexer) decimalDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) exponent() error {
	l.advance() // 'e' or 'E'
	if l.peek() == '+' || l.peek() == '-' {
		l.advance()
	}
	for l.peek() == '_' {
		l.advance()
	}
	if !isDigit(l.peek()) {
		return l.malformed("expected at least one digit in exponent")
	}
	l.decimalDigits()
	return nil
}

func (l *Lexer) malformed(format string, args ...any) *LexError {
	return &LexError{
		Kind:    LexMalformedNumber,
		Pos:     l.start,
		Message: fmt.Sprintf(format, args...),
	}
}

// str scans a quoted string. The opening quote has been consumed.
func (l *Lexer) str(kind TokenKind) (Token, error) {
	var sb strings.Builder
	for {
		if l.isAtEnd() {
			return Token{}, l.unterminatedString()
		}
		at := l.position()
		r := l.advance()
		switch r {
		case '"':
			tok := l.token(kind)
			tok.Value = sb.String()
			return tok, nil
		case '\\':
			if l.isAtEnd() {
				return Token{}, l.unterminatedString()
			}
			if l.peek() == '\n' || (l.peek() == '\r' && l.peekNext() == '\n') {
				for isContinuationSpace(l.peek()) {
					l.advance()
				}
				continue
			}
			v, err := l.escape(at, kind == TokenByteStringLiteral)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(v)
		default:
			sb.WriteRune(r)
		}
	}
}

func (l *Lexer) unterminatedString() *LexError {
	return &LexError{Kind: LexUnterminatedString, Pos: l.start, Message: "unterminated double quote string"}
}

// rawStringAhead reports whether source[i:] is zero or more '#'
// followed by a double quote.
func (l *Lexer) rawStringAhead(i int) bool {
	for i < len(l.source) && l.source[i] == '#' {
		i++
	}
	return i < len(l.source) && l.source[i] == '"'
}

// rawString scans r"..." or r#"..."#. The 'r' has been consumed.
func (l *Lexer) rawString(kind TokenKind) (Token, error) {
	hashes := 0
	for l.match('#') {
		hashes++
	}
	l.advance() // opening quote
	contentStart := l.pos
	for {
		if l.isAtEnd() {
			return Token{}, &LexError{Kind: LexUnterminatedString, Pos: l.start, Message: "unterminated raw string"}
		}
		if l.peek() == '"' && l.closesRaw(hashes) {
			content := l.source[contentStart:l.pos]
			for i := 0; i <= hashes; i++ {
				l.advance()
			}
			tok := l.token(kind)
			tok.Value = content
			return tok, nil
		}
		l.advance()
	}
}

func (l *Lexer) closesRaw(hashes int) bool {
	end := l.pos + 1 + hashes
	if end > len(l.source) {
		return false
	}
	return strings.Count(l.source[l.pos+1:end], "#") == hashes
}

// char scans a character literal. The opening quote has been consumed.
func (l *Lexer) char(kind TokenKind) (Token, error) {
	if l.isAtEnd() || l.peek() == '\n' {
		return Token{}, l.unterminatedChar()
	}
	at := l.position()
	c := l.advance()
	switch c {
	case '\'':
		return Token{}, &LexError{Kind: LexUnexpectedChar, Pos: l.start, Message: "empty character literal"}
	case '\\':
		if l.isAtEnd() {
			return Token{}, l.unterminatedChar()
		}
		v, err := l.escape(at, kind == TokenByteLiteral)
		if err != nil {
			return Token{}, err
		}
		c = v
	}
	if !l.match('\'') {
		return Token{}, l.unterminatedChar()
	}
	tok := l.token(kind)
	tok.Value = string(c)
	return tok, nil
}

func (l *Lexer) unterminatedChar() *LexError {
	return &LexError{Kind: LexUnterminatedChar, Pos: l.start, Message: "unterminated character literal"}
}

// escape decodes an escape sequence. The backslash at position at has
// been consumed.
func (l *Lexer) escape(at Position, byteEscape bool) (rune, error) {
	invalid := func(format string, args ...any) (rune, error) {
		return 0, &LexError{Kind: LexInvalidEscape, Pos: at, Message: fmt.Sprintf(format, args...)}
	}

	c := l.advance()
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '0':
		return 0, nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case 'x':
		hi, lo := l.peek(), l.peekNext()
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return invalid("numeric character escape is too short")
		}
		l.advance()
		l.advance()
		v := rune(digitValue(hi)<<4 | digitValue(lo))
		if v > 0x7F && !byteEscape {
			return invalid("out of range hex escape")
		}
		return v, nil
	case 'u':
		if byteEscape {
			return invalid("unicode escape in byte literal")
		}
		return l.unicodeEscape(invalid)
	}
	return invalid("unknown character escape %q", c)
}

func (l *Lexer) unicodeEscape(invalid func(string, ...any) (rune, error)) (rune, error) {
	if !l.match('{') {
		return invalid("incorrect unicode escape sequence")
	}
	var v rune
	digits := 0
	for {
		if l.isAtEnd() {
			return invalid("unterminated unicode escape")
		}
		c := l.peek()
		if c == '}' {
			l.advance()
			break
		}
		if c == '_' && digits > 0 {
			l.advance()
			continue
		}
		if !isHexDigit(c) || digits == 6 {
			return invalid("invalid character in unicode escape: %q", c)
		}
		v = v<<4 | rune(digitValue(c))
		digits++
		l.advance()
	}
	if digits == 0 {
		return invalid("empty unicode escape")
	}
	if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return invalid("invalid unicode character escape")
	}
	return v, nil
}

func (l *Lexer) token(kind TokenKind) Token {
	return Token{
		Kind:   kind,
		Lexeme: l.source[l.start.Offset:l.pos],
		Pos:    l.start,
		End:    l.position(),
	}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// isWhitespace reports Rust's Pattern_White_Space characters.
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u0085', '\u200E', '\u200F', '\u2028', '\u2029':
		return true
	}
	return false
}

func isContinuationSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return digitValue(r) < 16
}

// digitValue returns the value of a hex digit, or 16 for anything else.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 16
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
