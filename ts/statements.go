// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"strings"

	"github.com/opinionated/rs2ts/rust"
)

// assignOps maps Rust assignment operators to TypeScript.
var assignOps = map[rust.TokenKind]string{
	rust.TokenEqual:               "=",
	rust.TokenPlusEqual:           "+=",
	rust.TokenMinusEqual:          "-=",
	rust.TokenStarEqual:           "*=",
	rust.TokenSlashEqual:          "/=",
	rust.TokenPercentEqual:        "%=",
	rust.TokenCaretEqual:          "^=",
	rust.TokenAmpEqual:            "&=",
	rust.TokenPipeEqual:           "|=",
	rust.TokenLessLessEqual:       "<<=",
	rust.TokenGreaterGreaterEqual: ">>=",
}

func isEmpty(b *rust.Block) bool {
	return len(b.Stmts) == 0 && b.Tail == nil
}

// writeBody writes the statements of a block at the current indentation.
// When returns is set the block's value is returned: the tail expression
// becomes a return statement and a trailing if or block returns from each
// branch.
func (w *Writer) writeBody(b *rust.Block, returns bool) error {
	for i, stmt := range b.Stmts {
		last := returns && b.Tail == nil && i == len(b.Stmts)-1
		if err := w.writeStmt(stmt, last); err != nil {
			return err
		}
	}

	if b.Tail == nil {
		return nil
	}
	if unit, ok := b.Tail.(*rust.TupleLit); ok && len(unit.Elems) == 0 && !returns {
		return nil
	}
	value, err := w.expr(b.Tail)
	if err != nil {
		return err
	}
	if returns {
		w.writeLine("return %s;", value)
	} else {
		w.writeLine("%s;", statementExpr(value))
	}
	return nil
}

// writeScoped writes the statements of a nested block in a new scope, one
// level deeper.
func (w *Writer) writeScoped(b *rust.Block, returns bool) error {
	w.pushIndent()
	w.pushScope()
	err := w.writeBody(b, returns)
	w.popScope()
	w.popIndent()
	return err
}

// writeStmt writes one statement. returns is set only for the last
// statement of a value-returning block without a tail expression.
func (w *Writer) writeStmt(stmt rust.Stmt, returns bool) error {
	switch s := stmt.(type) {
	case *rust.LetStmt:
		return w.writeLet(s)

	case *rust.AssignStmt:
		op, ok := assignOps[s.Op]
		if !ok {
			return internalError(s, "unknown assignment operator %s", s.Op)
		}
		left, err := w.expr(s.Left)
		if err != nil {
			return err
		}
		right, err := w.expr(s.Right)
		if err != nil {
			return err
		}
		w.writeLine("%s %s %s;", statementExpr(left), op, right)
		return nil

	case *rust.ReturnStmt:
		if s.Value == nil {
			w.writeLine("return;")
			return nil
		}
		value, err := w.expr(s.Value)
		if err != nil {
			return err
		}
		w.writeLine("return %s;", value)
		return nil

	case *rust.ExprStmt:
		value, err := w.expr(s.Expr)
		if err != nil {
			return err
		}
		w.writeLine("%s;", statementExpr(value))
		return nil

	case *rust.IfStmt:
		return w.writeIf(s, returns)

	case *rust.WhileStmt:
		cond, err := w.condition(s.Cond)
		if err != nil {
			return err
		}
		return w.writeLoop("while ("+cond+")", s.Body)

	case *rust.LoopStmt:
		return w.writeLoop("while (true)", s.Body)

	case *rust.BreakStmt:
		w.writeLine("break;")
		return nil

	case *rust.ContinueStmt:
		w.writeLine("continue;")
		return nil

	case *rust.Block:
		if isEmpty(s) {
			w.writeLine("{}")
			return nil
		}
		w.writeLine("{")
		if err := w.writeScoped(s, returns); err != nil {
			return err
		}
		w.writeLine("}")
		return nil
	}
	return internalError(stmt, "no rendering rule for statement %T", stmt)
}

// writeLet writes a let binding as const, or let when it is mutable or
// initialized later. The initializer is rendered before the binding is
// declared, so it still sees any shadowed name.
func (w *Writer) writeLet(s *rust.LetStmt) error {
	var b strings.Builder
	if s.Mutable || s.Value == nil {
		b.WriteString("let ")
	} else {
		b.WriteString("const ")
	}

	var value string
	if s.Value != nil {
		v, err := w.expr(s.Value)
		if err != nil {
			return err
		}
		value = v
	}

	b.WriteString(w.bind(s.Name))
	if s.Type != nil {
		typ, err := w.typeName(s.Type)
		if err != nil {
			return err
		}
		b.WriteString(": ")
		b.WriteString(typ)
	}
	if s.Value != nil {
		b.WriteString(" = ")
		b.WriteString(value)
	}
	b.WriteByte(';')
	w.writeLine("%s", b.String())
	return nil
}

// writeIf writes an if / else if / else chain.
func (w *Writer) writeIf(s *rust.IfStmt, returns bool) error {
	cond, err := w.condition(s.Cond)
	if err != nil {
		return err
	}
	w.writeLine("if (%s) {", cond)
	if err := w.writeScoped(s.Then, returns); err != nil {
		return err
	}

	for next := s.Else; next != nil; {
		switch e := next.(type) {
		case *rust.IfStmt:
			cond, err := w.condition(e.Cond)
			if err != nil {
				return err
			}
			w.writeLine("} else if (%s) {", cond)
			if err := w.writeScoped(e.Then, returns); err != nil {
				return err
			}
			next = e.Else
		case *rust.Block:
			w.writeLine("} else {")
			if err := w.writeScoped(e, returns); err != nil {
				return err
			}
			next = nil
		default:
			return internalError(next, "no rendering rule for else branch %T", next)
		}
	}

	w.writeLine("}")
	return nil
}

func (w *Writer) writeLoop(header string, body *rust.Block) error {
	if isEmpty(body) {
		w.writeLine("%s {}", header)
		return nil
	}
	w.writeLine("%s {", header)
	if err := w.writeScoped(body, false); err != nil {
		return err
	}
	w.writeLine("}")
	return nil
}

// condition renders an if or while condition without redundant
// parentheses.
func (w *Writer) condition(e rust.Expr) (string, error) {
	if paren, ok := e.(*rust.ParenExpr); ok {
		e = paren.Expr
	}
	return w.expr(e)
}

// statementExpr keeps an expression statement that starts with an object
// literal from parsing as a block.
func statementExpr(s string) string {
	if strings.HasPrefix(s, "{") {
		return "(" + s + ")"
	}
	return s
}
