package rust

import (
	"fmt"
	"strings"
)

// Check performs the name resolution the TypeScript generator relies on.
// It resolves enum variant paths, marks tuple struct constructor calls and
// unit struct values, and rejects duplicate definitions. Check annotates
// the module in place and is the last stage that rejects input.
func Check(m *Module) error {
	c := &checker{
		items:   make(map[string]Item, len(m.Items)),
		structs: make(map[string]*StructDecl),
		enums:   make(map[string]*EnumDecl),
	}
	if err := c.declare(m); err != nil {
		return err
	}

	var err error
	Inspect(m, func(n Node) bool {
		if err != nil {
			return false
		}
		err = c.visit(n)
		return err == nil
	})
	return err
}

type checker struct {
	items   map[string]Item
	structs map[string]*StructDecl
	enums   map[string]*EnumDecl
}

func (c *checker) declare(m *Module) error {
	for _, item := range m.Items {
		name := item.ItemName()
		if _, dup := c.items[name]; dup {
			return duplicate(fmt.Sprintf("the name `%s` is defined multiple times", name), name, item.Pos())
		}
		c.items[name] = item

		switch it := item.(type) {
		case *StructDecl:
			c.structs[name] = it
			seen := make(map[string]bool, len(it.Fields))
			for _, field := range it.Fields {
				if seen[field.Name] {
					return duplicate(fmt.Sprintf("field `%s` is already declared", field.Name), field.Name, field.Span)
				}
				seen[field.Name] = true
			}
		case *EnumDecl:
			c.enums[name] = it
			seen := make(map[string]bool, len(it.Variants))
			for _, v := range it.Variants {
				if seen[v.Name] {
					return duplicate(fmt.Sprintf("the name `%s` is defined multiple times", v.Name), v.Name, v.Span)
				}
				seen[v.Name] = true
			}
		case *FunctionDecl:
			seen := make(map[string]bool, len(it.Params))
			for _, param := range it.Params {
				if seen[param.Name] {
					return duplicate(fmt.Sprintf("identifier `%s` is bound more than once in this parameter list", param.Name), param.Name, param.Span)
				}
				seen[param.Name] = true
			}
		}
	}
	return nil
}

func (c *checker) visit(n Node) error {
	switch n := n.(type) {
	case *PathExpr:
		if len(n.Segments) == 2 {
			if enum, ok := c.enums[n.Segments[0]]; ok && hasVariant(enum, n.Segments[1]) {
				n.Variant = n.Segments[1]
				return nil
			}
		}
		return unsupportedAt(n.Span, fmt.Sprintf("path `%s`", strings.Join(n.Segments, "::")))

	case *CallExpr:
		switch fn := n.Func.(type) {
		case *PathExpr:
			return unsupportedAt(fn.Span, fmt.Sprintf("call through path `%s`", strings.Join(fn.Segments, "::")))
		case *Ident:
			if s, ok := c.structs[fn.Name]; ok {
				if s.Kind != StructTuple {
					return mismatch(fmt.Sprintf("expected function, found struct `%s`", fn.Name), fn.Name, fn.Span)
				}
				n.TupleStruct = true
			}
		}

	case *Ident:
		if s, ok := c.structs[n.Name]; ok && s.Kind == StructUnit {
			n.UnitStruct = true
		}
		if _, ok := c.enums[n.Name]; ok {
			return mismatch(fmt.Sprintf("expected value, found enum `%s`", n.Name), n.Name, n.Span)
		}

	case *StructLit:
		if _, ok := c.enums[n.Name]; ok {
			return mismatch(fmt.Sprintf("expected struct, found enum `%s`", n.Name), n.Name, n.Span)
		}
		s, ok := c.structs[n.Name]
		if !ok {
			return nil
		}
		seen := make(map[string]bool, len(n.Fields))
		for _, init := range n.Fields {
			if seen[init.Name] {
				return duplicate(fmt.Sprintf("field `%s` specified more than once", init.Name), init.Name, init.Span)
			}
			seen[init.Name] = true
			if !hasField(s, init.Name) {
				return mismatch(fmt.Sprintf("struct `%s` has no field named `%s`", s.Name, init.Name), init.Name, init.Span)
			}
		}
	}
	return nil
}

func hasVariant(e *EnumDecl, name string) bool {
	for _, v := range e.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

func hasField(s *StructDecl, name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// nameToken synthesizes the token an error refers to from a node span.
func nameToken(name string, span Span) Token {
	return Token{Kind: TokenIdent, Lexeme: name, Value: name, Pos: span.Start, End: span.End}
}

func duplicate(msg, name string, span Span) error {
	return &ParseError{Message: msg, Expected: "unique name", Token: nameToken(name, span)}
}

func mismatch(msg, name string, span Span) error {
	return &ParseError{Message: msg, Token: nameToken(name, span)}
}

func unsupportedAt(span Span, construct string) error {
	return &UnsupportedError{Construct: construct, Token: Token{Kind: TokenIdent, Pos: span.Start, End: span.End}}
}
