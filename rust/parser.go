package rust

import (
	"fmt"
	"strings"
)

// Parser parses Rust tokens into an AST.
//
// Parsing stops at the first error. Constructs that are valid Rust but
// outside the supported subset produce an *UnsupportedError; everything
// else that does not fit the grammar produces a *ParseError.
type Parser struct {
	tokens  []Token
	current int

	// noStruct disables struct literals while parsing if/while
	// conditions, where `x {` starts the body.
	noStruct bool
}

// NewParser creates a new parser for the given tokens. The slice is
// expected to end with TokenEOF, as returned by Lexer.Tokenize.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		var end Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TokenEOF, Pos: end, End: end})
	}
	return &Parser{tokens: tokens}
}

// Parse parses the tokens and returns a Module AST.
func (p *Parser) Parse() (*Module, error) {
	module := &Module{}
	for !p.isAtEnd() {
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		module.Items = append(module.Items, item)
	}
	return module, nil
}

// itemHeader carries what precedes the item keyword.
type itemHeader struct {
	start   Position
	pub     bool
	derives []string
}

// item parses a top-level item.
func (p *Parser) item() (Item, error) {
	h := itemHeader{start: p.peek().Pos}

	derives, err := p.outerAttributes()
	if err != nil {
		return nil, err
	}
	h.derives = derives

	if p.match(TokenPub) {
		if p.check(TokenLeftParen) {
			return nil, p.unsupported("restricted visibility pub(...)")
		}
		h.pub = true
	}

	tok := p.peek()
	switch tok.Kind {
	case TokenConst:
		return p.constDecl(h)
	case TokenFn:
		return p.functionDecl(h)
	case TokenStruct:
		return p.structDecl(h)
	case TokenEnum:
		return p.enumDecl(h)
	case TokenImpl:
		return nil, p.unsupported("impl blocks")
	case TokenTrait:
		return nil, p.unsupported("traits")
	case TokenUse:
		return nil, p.unsupported("use declarations")
	case TokenMod:
		return nil, p.unsupported("modules")
	case TokenStatic:
		return nil, p.unsupported("static items")
	case TokenType:
		return nil, p.unsupported("type aliases")
	case TokenExtern, TokenCrate:
		return nil, p.unsupported("extern crates and blocks")
	case TokenUnsafe:
		return nil, p.unsupported("unsafe code")
	case TokenAsync:
		return nil, p.unsupported("async functions")
	case TokenReserved:
		return nil, p.reserved(tok)
	case TokenIdent:
		if p.peekAt(1).Kind == TokenBang {
			if tok.Value == "macro_rules" {
				return nil, p.unsupported("macro_rules! definitions")
			}
			return nil, p.unsupported("macro invocations")
		}
	}
	return nil, &ParseError{
		Message:  fmt.Sprintf("expected item, found %s", describe(tok)),
		Expected: "item",
		Token:    tok,
	}
}

// outerAttributes parses #[derive(...)] attributes and returns the
// derived trait names.
func (p *Parser) outerAttributes() ([]string, error) {
	var derives []string
	for p.check(TokenPound) {
		pound := p.advance()
		if p.check(TokenBang) {
			return nil, p.unsupportedAt(pound, "inner attributes")
		}
		if _, err := p.expectErr(TokenLeftBracket); err != nil {
			return nil, err
		}
		name := p.peek()
		if name.Kind != TokenIdent || name.Value != "derive" {
			return nil, p.unsupportedAt(pound, fmt.Sprintf("attribute #[%s]", name.Lexeme))
		}
		p.advance()
		if _, err := p.expectErr(TokenLeftParen); err != nil {
			return nil, err
		}
		for !p.check(TokenRightParen) {
			trait, err := p.expectIdent("derive trait name")
			if err != nil {
				return nil, err
			}
			derives = append(derives, trait.Value)
			if !p.match(TokenComma) {
				break
			}
		}
		if _, err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		if _, err := p.expectErr(TokenRightBracket); err != nil {
			return nil, err
		}
	}
	return derives, nil
}

// constDecl parses: const NAME: Type = expr;
func (p *Parser) constDecl(h itemHeader) (*ConstDecl, error) {
	p.advance() // const

	name, err := p.expectIdent("constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectErr(TokenEqual); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	semi, err := p.expectErr(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &ConstDecl{
		Name:    name.Value,
		Type:    typ,
		Value:   value,
		Pub:     h.pub,
		Derives: h.derives,
		Span:    Span{Start: h.start, End: semi.End},
	}, nil
}

// functionDecl parses: fn name(params) -> Type { body }
func (p *Parser) functionDecl(h itemHeader) (*FunctionDecl, error) {
	p.advance() // fn

	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}
	if p.check(TokenLess) {
		return nil, p.unsupported("generic parameters")
	}
	if _, err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}

	params := make([]*Param, 0, 4)
	for !p.check(TokenRightParen) {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.match(TokenComma) {
			break
		}
	}
	if _, err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}

	var ret Type
	if p.match(TokenArrow) {
		if p.check(TokenBang) {
			return nil, p.unsupported("never type")
		}
		if ret, err = p.typeSpec(); err != nil {
			return nil, err
		}
	}
	if p.check(TokenWhere) {
		return nil, p.unsupported("where clauses")
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &FunctionDecl{
		Name:       name.Value,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Pub:        h.pub,
		Derives:    h.derives,
		Span:       Span{Start: h.start, End: body.Span.End},
	}, nil
}

// parameter parses: [mut] name: Type
func (p *Parser) parameter() (*Param, error) {
	start := p.peek()
	if p.check(TokenSelfValue) ||
		(p.check(TokenAmpersand) && (p.peekAt(1).Kind == TokenSelfValue || p.peekAt(2).Kind == TokenSelfValue)) ||
		(p.check(TokenMut) && p.peekAt(1).Kind == TokenSelfValue) {
		return nil, p.unsupported("methods and self parameters")
	}

	mutable := p.match(TokenMut)
	if p.check(TokenUnderscore) || p.check(TokenLeftParen) || p.check(TokenLeftBracket) || p.check(TokenAmpersand) {
		return nil, p.unsupported("parameter patterns")
	}
	name, err := p.expectIdent("parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	return &Param{
		Name:    name.Value,
		Mutable: mutable,
		Type:    typ,
		Span:    Span{Start: start.Pos, End: typ.Pos().End},
	}, nil
}

// structDecl parses named, tuple and unit structs.
func (p *Parser) structDecl(h itemHeader) (*StructDecl, error) {
	p.advance() // struct

	name, err := p.expectIdent("struct name")
	if err != nil {
		return nil, err
	}
	if p.check(TokenLess) {
		return nil, p.unsupported("generic parameters")
	}

	decl := &StructDecl{
		Name:    name.Value,
		Pub:     h.pub,
		Derives: h.derives,
	}

	switch {
	case p.check(TokenSemicolon):
		decl.Kind = StructUnit
		decl.Span = Span{Start: h.start, End: p.advance().End}

	case p.match(TokenLeftBrace):
		decl.Kind = StructNamed
		decl.Fields = make([]*Field, 0, 4)
		for !p.check(TokenRightBrace) {
			field, err := p.structField()
			if err != nil {
				return nil, err
			}
			decl.Fields = append(decl.Fields, field)
			if !p.match(TokenComma) {
				break
			}
		}
		rbrace, err := p.expectErr(TokenRightBrace)
		if err != nil {
			return nil, err
		}
		decl.Span = Span{Start: h.start, End: rbrace.End}

	case p.match(TokenLeftParen):
		decl.Kind = StructTuple
		decl.Elems = make([]Type, 0, 4)
		for !p.check(TokenRightParen) {
			if p.check(TokenPound) {
				return nil, p.unsupported("field attributes")
			}
			if p.match(TokenPub) && p.check(TokenLeftParen) {
				return nil, p.unsupported("restricted visibility pub(...)")
			}
			elem, err := p.typeSpec()
			if err != nil {
				return nil, err
			}
			decl.Elems = append(decl.Elems, elem)
			if !p.match(TokenComma) {
				break
			}
		}
		if _, err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		if p.check(TokenWhere) {
			return nil, p.unsupported("where clauses")
		}
		semi, err := p.expectErr(TokenSemicolon)
		if err != nil {
			return nil, err
		}
		decl.Span = Span{Start: h.start, End: semi.End}

	default:
		tok := p.peek()
		return nil, &ParseError{
			Message:  fmt.Sprintf("expected `{`, `(` or `;` after struct name, found %s", describe(tok)),
			Expected: "struct body",
			Token:    tok,
		}
	}

	return decl, nil
}

// structField parses: [pub] name: Type
func (p *Parser) structField() (*Field, error) {
	start := p.peek()
	if p.check(TokenPound) {
		return nil, p.unsupported("field attributes")
	}
	pub := false
	if p.match(TokenPub) {
		if p.check(TokenLeftParen) {
			return nil, p.unsupported("restricted visibility pub(...)")
		}
		pub = true
	}
	name, err := p.expectIdent("field name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	return &Field{
		Name: name.Value,
		Type: typ,
		Pub:  pub,
		Span: Span{Start: start.Pos, End: typ.Pos().End},
	}, nil
}

// enumDecl parses an enum whose variants carry no data.
func (p *Parser) enumDecl(h itemHeader) (*EnumDecl, error) {
	p.advance() // enum

	name, err := p.expectIdent("enum name")
	if err != nil {
		return nil, err
	}
	if p.check(TokenLess) {
		return nil, p.unsupported("generic parameters")
	}
	if _, err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	decl := &EnumDecl{
		Name:     name.Value,
		Variants: make([]*Variant, 0, 4),
		Pub:      h.pub,
		Derives:  h.derives,
	}
	for !p.check(TokenRightBrace) {
		if p.check(TokenPound) {
			return nil, p.unsupported("variant attributes")
		}
		v, err := p.expectIdent("variant name")
		if err != nil {
			return nil, err
		}
		switch {
		case p.check(TokenLeftParen):
			return nil, p.unsupported("tuple enum variants")
		case p.check(TokenLeftBrace):
			return nil, p.unsupported("struct enum variants")
		case p.check(TokenEqual):
			return nil, p.unsupported("enum discriminants")
		}
		decl.Variants = append(decl.Variants, &Variant{Name: v.Value, Span: tokenSpan(v)})
		if !p.match(TokenComma) {
			break
		}
	}
	rbrace, err := p.expectErr(TokenRightBrace)
	if err != nil {
		return nil, err
	}
	decl.Span = Span{Start: h.start, End: rbrace.End}
	return decl, nil
}

// typeSpec parses a type.
func (p *Parser) typeSpec() (Type, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIdent:
		p.advance()
		if p.check(TokenPathSep) {
			return nil, p.unsupported("type paths")
		}
		if p.check(TokenLess) {
			return nil, p.unsupported("generic type arguments")
		}
		if kind, ok := LookupPrimitive(tok.Value); ok {
			return &PrimitiveType{Kind: kind, Span: tokenSpan(tok)}, nil
		}
		return &NamedType{Name: tok.Value, Span: tokenSpan(tok)}, nil

	case TokenAmpersand, TokenAmpAmp:
		p.advance()
		if p.check(TokenLifetime) {
			return nil, p.unsupported("lifetimes")
		}
		mutable := p.match(TokenMut)
		elem, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		span := Span{Start: tok.Pos, End: elem.Pos().End}
		ref := &RefType{Mutable: mutable, Elem: elem, Span: span}
		if tok.Kind == TokenAmpAmp {
			return &RefType{Elem: ref, Span: span}, nil
		}
		return ref, nil

	case TokenLeftBracket:
		p.advance()
		elem, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		if p.match(TokenSemicolon) {
			n, err := p.expression()
			if err != nil {
				return nil, err
			}
			rbracket, err := p.expectErr(TokenRightBracket)
			if err != nil {
				return nil, err
			}
			return &ArrayType{Elem: elem, Len: n, Span: Span{Start: tok.Pos, End: rbracket.End}}, nil
		}
		rbracket, err := p.expectErr(TokenRightBracket)
		if err != nil {
			return nil, err
		}
		return &SliceType{Elem: elem, Span: Span{Start: tok.Pos, End: rbracket.End}}, nil

	case TokenLeftParen:
		p.advance()
		elems := make([]Type, 0, 2)
		trailingComma := false
		for !p.check(TokenRightParen) {
			elem, err := p.typeSpec()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			trailingComma = p.match(TokenComma)
			if !trailingComma {
				break
			}
		}
		rparen, err := p.expectErr(TokenRightParen)
		if err != nil {
			return nil, err
		}
		if len(elems) == 1 && !trailingComma {
			return elems[0], nil
		}
		return &TupleType{Elems: elems, Span: Span{Start: tok.Pos, End: rparen.End}}, nil

	case TokenSelfType:
		return nil, p.unsupported("Self type")
	case TokenStar:
		return nil, p.unsupported("raw pointers")
	case TokenFn, TokenUnsafe, TokenExtern:
		return nil, p.unsupported("function pointer types")
	case TokenImpl:
		return nil, p.unsupported("impl Trait types")
	case TokenDyn:
		return nil, p.unsupported("trait objects")
	case TokenBang:
		return nil, p.unsupported("never type")
	case TokenUnderscore:
		return nil, p.unsupported("inferred types")
	case TokenCrate, TokenSuper, TokenSelfValue, TokenPathSep:
		return nil, p.unsupported("type paths")
	case TokenLifetime:
		return nil, p.unsupported("lifetimes")
	case TokenReserved:
		return nil, p.reserved(tok)
	}

	return nil, &ParseError{
		Message:  fmt.Sprintf("expected type, found %s", describe(tok)),
		Expected: "type",
		Token:    tok,
	}
}

// block parses { stmts [tail] }.
func (p *Parser) block() (*Block, error) {
	lbrace, err := p.expectErr(TokenLeftBrace)
	if err != nil {
		return nil, err
	}

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	b := &Block{Stmts: make([]Stmt, 0, 8)}
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			break
		}
		if p.match(TokenSemicolon) {
			continue
		}
		stmt, tail, err := p.statement()
		if err != nil {
			return nil, err
		}
		if tail != nil {
			b.Tail = tail
			break
		}
		b.Stmts = append(b.Stmts, stmt)
	}

	rbrace, err := p.expectErr(TokenRightBrace)
	if err != nil {
		return nil, err
	}
	b.Span = Span{Start: lbrace.Pos, End: rbrace.End}
	return b, nil
}

// statement parses one statement, or returns the block's tail expression.
func (p *Parser) statement() (Stmt, Expr, error) {
	var (
		stmt Stmt
		err  error
	)

	switch p.peek().Kind {
	case TokenLet:
		stmt, err = p.letStmt()
	case TokenReturn:
		stmt, err = p.returnStmt()
	case TokenIf:
		stmt, err = p.ifStmt()
	case TokenWhile:
		stmt, err = p.whileStmt()
	case TokenLoop:
		stmt, err = p.loopStmt()
	case TokenBreak:
		stmt, err = p.breakStmt()
	case TokenContinue:
		stmt, err = p.continueStmt()
	case TokenLeftBrace:
		stmt, err = p.block()
	case TokenFor:
		err = p.unsupported("for loops")
	case TokenMatch:
		err = p.unsupported("match expressions")
	case TokenUnsafe:
		err = p.unsupported("unsafe blocks")
	case TokenLifetime:
		err = p.unsupported("loop labels")
	case TokenPound:
		err = p.unsupported("statement attributes")
	case TokenFn, TokenStruct, TokenEnum, TokenConst, TokenStatic, TokenImpl,
		TokenTrait, TokenUse, TokenMod, TokenType, TokenPub, TokenExtern:
		err = p.unsupported("nested items")
	default:
		return p.exprOrAssignStmt()
	}

	if err != nil {
		return nil, nil, err
	}
	return stmt, nil, nil
}

// exprOrAssignStmt parses an expression statement, an assignment, or a
// block tail expression.
func (p *Parser) exprOrAssignStmt() (Stmt, Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, nil, err
	}

	if isAssignOp(p.peek().Kind) {
		op := p.advance()
		right, err := p.expression()
		if err != nil {
			return nil, nil, err
		}
		semi, err := p.expectErr(TokenSemicolon)
		if err != nil {
			return nil, nil, err
		}
		return &AssignStmt{
			Left:  expr,
			Op:    op.Kind,
			Right: right,
			Span:  Span{Start: expr.Pos().Start, End: semi.End},
		}, nil, nil
	}

	if p.check(TokenSemicolon) {
		semi := p.advance()
		return &ExprStmt{Expr: expr, Span: Span{Start: expr.Pos().Start, End: semi.End}}, nil, nil
	}
	if p.check(TokenRightBrace) {
		return nil, expr, nil
	}

	tok := p.peek()
	return nil, nil, &ParseError{
		Message:  fmt.Sprintf("expected `;` or `}`, found %s", describe(tok)),
		Expected: "`;`",
		Token:    tok,
	}
}

// letStmt parses: let [mut] name [: Type] [= expr];
func (p *Parser) letStmt() (*LetStmt, error) {
	let := p.advance()

	mutable := p.match(TokenMut)
	switch p.peek().Kind {
	case TokenUnderscore, TokenLeftParen, TokenLeftBracket, TokenRef, TokenAmpersand:
		return nil, p.unsupported("let patterns")
	}
	name, err := p.expectIdent("binding name")
	if err != nil {
		return nil, err
	}
	if p.check(TokenLeftBrace) || p.check(TokenPathSep) {
		return nil, p.unsupported("let patterns")
	}

	stmt := &LetStmt{Name: name.Value, Mutable: mutable}
	if p.match(TokenColon) {
		if stmt.Type, err = p.typeSpec(); err != nil {
			return nil, err
		}
	}
	if p.match(TokenEqual) {
		if stmt.Value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if p.check(TokenElse) {
		return nil, p.unsupported("let-else")
	}
	semi, err := p.expectErr(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	stmt.Span = Span{Start: let.Pos, End: semi.End}
	return stmt, nil
}

// returnStmt parses: return [expr] [;]
func (p *Parser) returnStmt() (*ReturnStmt, error) {
	ret := p.advance()
	stmt := &ReturnStmt{Span: tokenSpan(ret)}

	if !p.check(TokenSemicolon) && !p.check(TokenRightBrace) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
		stmt.Span.End = value.Pos().End
	}
	end, err := p.statementEnd()
	if err != nil {
		return nil, err
	}
	if end != nil {
		stmt.Span.End = end.End
	}
	return stmt, nil
}

func (p *Parser) breakStmt() (*BreakStmt, error) {
	brk := p.advance()
	if p.check(TokenLifetime) {
		return nil, p.unsupported("loop labels")
	}
	if !p.check(TokenSemicolon) && !p.check(TokenRightBrace) {
		return nil, p.unsupported("break with a value")
	}
	stmt := &BreakStmt{Span: tokenSpan(brk)}
	if semi, err := p.statementEnd(); err != nil {
		return nil, err
	} else if semi != nil {
		stmt.Span.End = semi.End
	}
	return stmt, nil
}

func (p *Parser) continueStmt() (*ContinueStmt, error) {
	cont := p.advance()
	if p.check(TokenLifetime) {
		return nil, p.unsupported("loop labels")
	}
	stmt := &ContinueStmt{Span: tokenSpan(cont)}
	if semi, err := p.statementEnd(); err != nil {
		return nil, err
	} else if semi != nil {
		stmt.Span.End = semi.End
	}
	return stmt, nil
}

// statementEnd consumes the semicolon after return, break or continue.
// The semicolon may be omitted before a closing brace.
func (p *Parser) statementEnd() (*Token, error) {
	if p.check(TokenSemicolon) {
		semi := p.advance()
		return &semi, nil
	}
	if p.check(TokenRightBrace) {
		return nil, nil
	}
	_, err := p.expectErr(TokenSemicolon)
	return nil, err
}

// ifStmt parses: if cond { } [else (if ... | { })]
func (p *Parser) ifStmt() (*IfStmt, error) {
	ifTok := p.advance()

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{
		Cond: cond,
		Then: then,
		Span: Span{Start: ifTok.Pos, End: then.Span.End},
	}

	if p.match(TokenElse) {
		if p.check(TokenIf) {
			elseIf, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseIf
			stmt.Span.End = elseIf.Span.End
		} else {
			elseBlock, err := p.block()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
			stmt.Span.End = elseBlock.Span.End
		}
	}

	return stmt, nil
}

// whileStmt parses: while cond { }
func (p *Parser) whileStmt() (*WhileStmt, error) {
	whileTok := p.advance()

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{
		Cond: cond,
		Body: body,
		Span: Span{Start: whileTok.Pos, End: body.Span.End},
	}, nil
}

// loopStmt parses: loop { }
func (p *Parser) loopStmt() (*LoopStmt, error) {
	loopTok := p.advance()

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &LoopStmt{
		Body: body,
		Span: Span{Start: loopTok.Pos, End: body.Span.End},
	}, nil
}

// condition parses an if/while condition with struct literals disabled.
func (p *Parser) condition() (Expr, error) {
	if p.check(TokenLet) {
		return nil, p.unsupported("if let and while let")
	}
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.expression()
}

// Expressions

func (p *Parser) expression() (Expr, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.check(TokenDotDot) || p.check(TokenDotDotEqual) {
		return nil, p.unsupported("range expressions")
	}
	return expr, nil
}

// binaryLevel parses a left-associative chain of the given operators
// over operands produced by next.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenKind) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.matchAny(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
			Span:  Span{Start: left.Pos().Start, End: right.Pos().End},
		}
	}

	return left, nil
}

// logicalOr parses || expressions.
func (p *Parser) logicalOr() (Expr, error) {
	return p.binaryLevel(p.logicalAnd, TokenPipePipe)
}

// logicalAnd parses && expressions.
func (p *Parser) logicalAnd() (Expr, error) {
	return p.binaryLevel(p.comparison, TokenAmpAmp)
}

// comparison parses a single, non-associative comparison.
func (p *Parser) comparison() (Expr, error) {
	left, err := p.bitwiseOr()
	if err != nil {
		return nil, err
	}
	if !isComparison(p.peek().Kind) {
		return left, nil
	}

	op := p.advance()
	right, err := p.bitwiseOr()
	if err != nil {
		return nil, err
	}
	if isComparison(p.peek().Kind) {
		return nil, &ParseError{
			Message: "comparison operators cannot be chained",
			Token:   p.peek(),
		}
	}

	return &BinaryExpr{
		Left:  left,
		Op:    op.Kind,
		Right: right,
		Span:  Span{Start: left.Pos().Start, End: right.Pos().End},
	}, nil
}

// bitwiseOr parses | expressions.
func (p *Parser) bitwiseOr() (Expr, error) {
	return p.binaryLevel(p.bitwiseXor, TokenPipe)
}

// bitwiseXor parses ^ expressions.
func (p *Parser) bitwiseXor() (Expr, error) {
	return p.binaryLevel(p.bitwiseAnd, TokenCaret)
}

// bitwiseAnd parses & expressions.
func (p *Parser) bitwiseAnd() (Expr, error) {
	return p.binaryLevel(p.shift, TokenAmpersand)
}

// shift parses << and >> expressions.
func (p *Parser) shift() (Expr, error) {
	return p.binaryLevel(p.additive, TokenLessLess, TokenGreaterGreater)
}

// additive parses + and - expressions.
func (p *Parser) additive() (Expr, error) {
	return p.binaryLevel(p.multiplicative, TokenPlus, TokenMinus)
}

// multiplicative parses *, / and % expressions.
func (p *Parser) multiplicative() (Expr, error) {
	return p.binaryLevel(p.cast, TokenStar, TokenSlash, TokenPercent)
}

// cast rejects `as` conversions after a unary operand.
func (p *Parser) cast() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.check(TokenAs) {
		return nil, p.unsupported("as casts")
	}
	return expr, nil
}

// unary parses -x, !x and borrows. A minus directly applied to a numeric
// literal is folded into the literal.
func (p *Parser) unary() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenMinus, TokenBang:
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*Literal); ok && tok.Kind == TokenMinus &&
			(lit.Kind == LitInt || lit.Kind == LitFloat) && !lit.IsNegative() {
			lit.Value = "-" + lit.Value
			lit.Span.Start = tok.Pos
			return lit, nil
		}
		return &UnaryExpr{
			Op:      tok.Kind,
			Operand: operand,
			Span:    Span{Start: tok.Pos, End: operand.Pos().End},
		}, nil

	case TokenAmpersand, TokenAmpAmp:
		p.advance()
		mutable := p.match(TokenMut)
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		span := Span{Start: tok.Pos, End: operand.Pos().End}
		ref := &RefExpr{Mutable: mutable, Operand: operand, Span: span}
		if tok.Kind == TokenAmpAmp {
			return &RefExpr{Operand: ref, Span: span}, nil
		}
		return ref, nil

	case TokenStar:
		return nil, p.unsupported("dereference")
	case TokenDotDot, TokenDotDotEqual:
		return nil, p.unsupported("range expressions")
	}

	return p.postfix()
}

// postfix parses calls, field access and indexing.
func (p *Parser) postfix() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(TokenLeftParen):
			p.advance()
			args, err := p.exprList(TokenRightParen)
			if err != nil {
				return nil, err
			}
			rparen, err := p.expectErr(TokenRightParen)
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{
				Func: expr,
				Args: args,
				Span: Span{Start: expr.Pos().Start, End: rparen.End},
			}

		case p.check(TokenLeftBracket):
			p.advance()
			index, err := p.nested(p.expression)
			if err != nil {
				return nil, err
			}
			rbracket, err := p.expectErr(TokenRightBracket)
			if err != nil {
				return nil, err
			}
			expr = &IndexExpr{
				Expr:  expr,
				Index: index,
				Span:  Span{Start: expr.Pos().Start, End: rbracket.End},
			}

		case p.check(TokenDot):
			p.advance()
			if expr, err = p.field(expr); err != nil {
				return nil, err
			}

		case p.check(TokenQuestion):
			return nil, p.unsupported("the ? operator")

		default:
			return expr, nil
		}
	}
}

// field parses the name after a dot: an identifier, a tuple index, or a
// float-looking pair of tuple indices such as t.0.1.
func (p *Parser) field(expr Expr) (Expr, error) {
	tok := p.peek()
	start := expr.Pos().Start

	switch tok.Kind {
	case TokenIdent:
		p.advance()
		if p.check(TokenPathSep) {
			return nil, p.unsupported("generic method calls")
		}
		return &FieldExpr{Expr: expr, Field: tok.Value, Span: Span{Start: start, End: tok.End}}, nil

	case TokenIntLiteral:
		if tok.Suffix != "" || strings.ContainsAny(tok.Value, "_xob") {
			break
		}
		p.advance()
		return &FieldExpr{Expr: expr, Field: tok.Value, Span: Span{Start: start, End: tok.End}}, nil

	case TokenFloatLiteral:
		first, second, ok := strings.Cut(tok.Value, ".")
		if tok.Suffix != "" || !ok || !isIndex(first) || !isIndex(second) {
			break
		}
		p.advance()
		inner := &FieldExpr{Expr: expr, Field: first, Span: Span{Start: start, End: tok.End}}
		return &FieldExpr{Expr: inner, Field: second, Span: Span{Start: start, End: tok.End}}, nil

	case TokenAwait:
		return nil, p.unsupported("async")
	}

	return nil, &ParseError{
		Message:  fmt.Sprintf("expected field name, found %s", describe(tok)),
		Expected: "field name",
		Token:    tok,
	}
}

// primary parses primary expressions.
func (p *Parser) primary() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		return &Literal{Kind: LitInt, Value: tok.Value, Suffix: tok.Suffix, Span: tokenSpan(tok)}, nil
	case TokenFloatLiteral:
		p.advance()
		return &Literal{Kind: LitFloat, Value: tok.Value, Suffix: tok.Suffix, Span: tokenSpan(tok)}, nil
	case TokenStringLiteral:
		p.advance()
		return &Literal{Kind: LitString, Value: tok.Value, Span: tokenSpan(tok)}, nil
	case TokenCharLiteral:
		p.advance()
		return &Literal{Kind: LitChar, Value: tok.Value, Span: tokenSpan(tok)}, nil
	case TokenTrue, TokenFalse:
		p.advance()
		return &Literal{Kind: LitBool, Value: tok.Lexeme, Span: tokenSpan(tok)}, nil
	case TokenByteLiteral, TokenByteStringLiteral:
		return nil, p.unsupported("byte literals")

	case TokenIdent:
		p.advance()
		switch {
		case p.check(TokenBang):
			return nil, p.unsupportedAt(tok, "macro invocations")
		case p.check(TokenPathSep):
			return p.path(tok)
		case p.check(TokenLeftBrace) && !p.noStruct:
			return p.structLit(tok)
		}
		return &Ident{Name: tok.Value, Span: tokenSpan(tok)}, nil

	case TokenLeftParen:
		return p.parenOrTuple()
	case TokenLeftBracket:
		return p.arrayLit()

	case TokenIf:
		return nil, p.unsupported("if expressions in value position")
	case TokenMatch:
		return nil, p.unsupported("match expressions")
	case TokenLoop, TokenWhile, TokenFor:
		return nil, p.unsupported("loops in value position")
	case TokenLeftBrace:
		return nil, p.unsupported("block expressions")
	case TokenUnsafe:
		return nil, p.unsupported("unsafe blocks")
	case TokenPipe, TokenPipePipe, TokenMove:
		return nil, p.unsupported("closures")
	case TokenAsync:
		return nil, p.unsupported("async blocks")
	case TokenReturn, TokenBreak, TokenContinue:
		return nil, p.unsupported("control flow in expression position")
	case TokenSelfValue, TokenSelfType:
		return nil, p.unsupported("methods and self")
	case TokenCrate, TokenSuper, TokenPathSep, TokenLess:
		return nil, p.unsupported("module paths")
	case TokenLifetime:
		return nil, p.unsupported("loop labels")
	case TokenReserved:
		return nil, p.reserved(tok)
	}

	return nil, &ParseError{
		Message:  fmt.Sprintf("expected expression, found %s", describe(tok)),
		Expected: "expression",
		Token:    tok,
	}
}

// path parses the rest of a::b. The first segment has been consumed.
func (p *Parser) path(first Token) (Expr, error) {
	segments := []string{first.Value}
	end := first.End
	for p.match(TokenPathSep) {
		if p.check(TokenLess) {
			return nil, p.unsupported("generic type arguments")
		}
		seg, err := p.expectIdent("path segment")
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg.Value)
		end = seg.End
	}
	if p.check(TokenBang) {
		return nil, p.unsupportedAt(first, "macro invocations")
	}
	if p.check(TokenLeftBrace) && !p.noStruct {
		return nil, p.unsupportedAt(first, "struct enum variants")
	}
	return &PathExpr{Segments: segments, Span: Span{Start: first.Pos, End: end}}, nil
}

// structLit parses S { a: e, b }. The name has been consumed.
func (p *Parser) structLit(name Token) (Expr, error) {
	p.advance() // {

	lit := &StructLit{Name: name.Value, Fields: make([]*FieldInit, 0, 4)}
	for !p.check(TokenRightBrace) {
		if p.check(TokenDotDot) {
			return nil, p.unsupported("struct update syntax")
		}
		if p.check(TokenIntLiteral) {
			return nil, p.unsupported("positional struct literal fields")
		}
		id, err := p.expectIdent("field name")
		if err != nil {
			return nil, err
		}
		init := &FieldInit{Name: id.Value, Span: tokenSpan(id)}
		if p.match(TokenColon) {
			value, err := p.nested(p.expression)
			if err != nil {
				return nil, err
			}
			init.Value = value
			init.Span.End = value.Pos().End
		} else {
			init.Value = &Ident{Name: id.Value, Span: tokenSpan(id)}
			init.Shorthand = true
		}
		lit.Fields = append(lit.Fields, init)
		if !p.match(TokenComma) {
			break
		}
	}

	rbrace, err := p.expectErr(TokenRightBrace)
	if err != nil {
		return nil, err
	}
	lit.Span = Span{Start: name.Pos, End: rbrace.End}
	return lit, nil
}

// parenOrTuple parses (), (e), (e,) and (a, b, ...).
func (p *Parser) parenOrTuple() (Expr, error) {
	lparen := p.advance()

	if p.check(TokenRightParen) {
		rparen := p.advance()
		return &TupleLit{Span: Span{Start: lparen.Pos, End: rparen.End}}, nil
	}

	first, err := p.nested(p.expression)
	if err != nil {
		return nil, err
	}
	if p.check(TokenRightParen) {
		rparen := p.advance()
		return &ParenExpr{Expr: first, Span: Span{Start: lparen.Pos, End: rparen.End}}, nil
	}

	elems := []Expr{first}
	for p.match(TokenComma) {
		if p.check(TokenRightParen) {
			break
		}
		elem, err := p.nested(p.expression)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	rparen, err := p.expectErr(TokenRightParen)
	if err != nil {
		return nil, err
	}
	return &TupleLit{Elems: elems, Span: Span{Start: lparen.Pos, End: rparen.End}}, nil
}

// arrayLit parses [a, b, c].
func (p *Parser) arrayLit() (Expr, error) {
	lbracket := p.advance()

	elems := make([]Expr, 0, 4)
	if !p.check(TokenRightBracket) {
		first, err := p.nested(p.expression)
		if err != nil {
			return nil, err
		}
		if p.check(TokenSemicolon) {
			return nil, p.unsupported("repeat array expressions")
		}
		elems = append(elems, first)
		for p.match(TokenComma) {
			if p.check(TokenRightBracket) {
				break
			}
			elem, err := p.nested(p.expression)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
	}

	rbracket, err := p.expectErr(TokenRightBracket)
	if err != nil {
		return nil, err
	}
	return &ArrayLit{Elems: elems, Span: Span{Start: lbracket.Pos, End: rbracket.End}}, nil
}

// exprList parses comma-separated expressions up to close, which is left
// for the caller to consume.
func (p *Parser) exprList(close TokenKind) ([]Expr, error) {
	list := make([]Expr, 0, 4)
	for !p.check(close) {
		e, err := p.nested(p.expression)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if !p.match(TokenComma) {
			break
		}
	}
	return list, nil
}

// nested runs parse with struct literals re-enabled, as inside any
// delimited group.
func (p *Parser) nested(parse func() (Expr, error)) (Expr, error) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()
	return parse()
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekAt returns the token n positions ahead, or the EOF token.
func (p *Parser) peekAt(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchAny(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.match(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) expectErr(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.peek()
	return Token{}, &ParseError{
		Message:  fmt.Sprintf("expected %s, found %s", quoteKind(kind), describe(tok)),
		Expected: quoteKind(kind),
		Token:    tok,
	}
}

func (p *Parser) expectIdent(what string) (Token, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		return p.advance(), nil
	case TokenReserved:
		return Token{}, p.reserved(tok)
	}
	return Token{}, &ParseError{
		Message:  fmt.Sprintf("expected %s, found %s", what, describe(tok)),
		Expected: what,
		Token:    tok,
	}
}

func (p *Parser) unsupported(construct string) error {
	return p.unsupportedAt(p.peek(), construct)
}

func (p *Parser) unsupportedAt(tok Token, construct string) error {
	return &UnsupportedError{Construct: construct, Token: tok}
}

func (p *Parser) reserved(tok Token) error {
	return p.unsupportedAt(tok, fmt.Sprintf("reserved keyword `%s`", tok.Lexeme))
}

func tokenSpan(tok Token) Span {
	return Span{Start: tok.Pos, End: tok.End}
}

// describe renders a token for "found ..." messages.
func describe(tok Token) string {
	switch {
	case tok.Kind == TokenEOF:
		return "end of input"
	case tok.Kind == TokenIdent:
		return fmt.Sprintf("identifier `%s`", tok.Value)
	case tok.Kind.IsKeyword():
		return fmt.Sprintf("keyword `%s`", tok.Lexeme)
	case tok.Kind < TokenUnderscore:
		return fmt.Sprintf("%s `%s`", tok.Kind, tok.Lexeme)
	}
	return fmt.Sprintf("`%s`", tok.Lexeme)
}

// quoteKind renders an expected token kind, quoting symbols and keywords.
func quoteKind(kind TokenKind) string {
	if kind < TokenUnderscore {
		return kind.String()
	}
	return "`" + kind.String() + "`"
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isComparison(kind TokenKind) bool {
	switch kind {
	case TokenEqualEqual, TokenBangEqual, TokenLess, TokenLessEqual,
		TokenGreater, TokenGreaterEqual:
		return true
	}
	return false
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenEqual, TokenPlusEqual, TokenMinusEqual, TokenStarEqual,
		TokenSlashEqual, TokenPercentEqual, TokenAmpEqual, TokenPipeEqual,
		TokenCaretEqual, TokenLessLessEqual, TokenGreaterGreaterEqual:
		return true
	}
	return false
}
