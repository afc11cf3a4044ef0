// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"fmt"
	"strings"

	"github.com/opinionated/rs2ts/rust"
)

// TypeScript operator precedence, higher binds tighter.
const (
	precLowest = iota
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

type binaryOp struct {
	text string
	prec int
}

// binaryOps maps Rust binary operators to TypeScript. Equality uses the
// strict operators; everything else keeps its spelling.
var binaryOps = map[rust.TokenKind]binaryOp{
	rust.TokenPipePipe:       {"||", precLogicalOr},
	rust.TokenAmpAmp:         {"&&", precLogicalAnd},
	rust.TokenPipe:           {"|", precBitOr},
	rust.TokenCaret:          {"^", precBitXor},
	rust.TokenAmpersand:      {"&", precBitAnd},
	rust.TokenEqualEqual:     {"===", precEquality},
	rust.TokenBangEqual:      {"!==", precEquality},
	rust.TokenLess:           {"<", precRelational},
	rust.TokenLessEqual:      {"<=", precRelational},
	rust.TokenGreater:        {">", precRelational},
	rust.TokenGreaterEqual:   {">=", precRelational},
	rust.TokenLessLess:       {"<<", precShift},
	rust.TokenGreaterGreater: {">>", precShift},
	rust.TokenPlus:           {"+", precAdditive},
	rust.TokenMinus:          {"-", precAdditive},
	rust.TokenStar:           {"*", precMultiplicative},
	rust.TokenSlash:          {"/", precMultiplicative},
	rust.TokenPercent:        {"%", precMultiplicative},
}

var unaryOps = map[rust.TokenKind]string{
	rust.TokenMinus: "-",
	rust.TokenBang:  "!",
}

// expr renders an expression.
func (w *Writer) expr(e rust.Expr) (string, error) {
	s, _, err := w.exprPrec(e)
	return s, err
}

// operand renders e, parenthesized when it binds looser than min.
func (w *Writer) operand(e rust.Expr, min int) (string, error) {
	s, prec, err := w.exprPrec(e)
	if err != nil {
		return "", err
	}
	if prec < min {
		return "(" + s + ")", nil
	}
	return s, nil
}

// exprPrec renders an expression and reports the precedence of its root
// operator.
//
//nolint:gocyclo // One case per expression node
func (w *Writer) exprPrec(e rust.Expr) (string, int, error) {
	switch e := e.(type) {
	case *rust.Literal:
		s, err := literal(e)
		if err != nil {
			return "", 0, err
		}
		if e.IsNegative() {
			return s, precUnary, nil
		}
		return s, precPrimary, nil

	case *rust.Ident:
		if e.UnitStruct {
			return "{}", precPrimary, nil
		}
		return w.name(e.Name), precPrimary, nil

	case *rust.PathExpr:
		if e.Variant == "" {
			return "", 0, &Error{
				Kind:    ErrUncheckedModule,
				Message: fmt.Sprintf("unresolved path %s", strings.Join(e.Segments, "::")),
				Span:    &e.Span,
			}
		}
		return quote(e.Variant), precPrimary, nil

	case *rust.BinaryExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return "", 0, internalError(e, "unknown binary operator %s", e.Op)
		}
		left, err := w.operand(e.Left, op.prec)
		if err != nil {
			return "", 0, err
		}
		right, err := w.operand(e.Right, op.prec+1)
		if err != nil {
			return "", 0, err
		}
		return left + " " + op.text + " " + right, op.prec, nil

	case *rust.UnaryExpr:
		op, ok := unaryOps[e.Op]
		if !ok {
			return "", 0, internalError(e, "unknown unary operator %s", e.Op)
		}
		operand, err := w.operand(e.Operand, precUnary)
		if err != nil {
			return "", 0, err
		}
		// Avoid emitting -- or a decrement.
		if op == "-" && strings.HasPrefix(operand, "-") {
			operand = "(" + operand + ")"
		}
		return op + operand, precUnary, nil

	case *rust.RefExpr:
		return w.exprPrec(e.Operand)

	case *rust.CallExpr:
		args, err := w.list(e.Args)
		if err != nil {
			return "", 0, err
		}
		if e.TupleStruct {
			return "[" + args + "]", precPrimary, nil
		}
		fn, err := w.operand(e.Func, precPostfix)
		if err != nil {
			return "", 0, err
		}
		return fn + "(" + args + ")", precPostfix, nil

	case *rust.FieldExpr:
		recv, err := w.receiver(e.Expr)
		if err != nil {
			return "", 0, err
		}
		if e.IsTupleIndex() {
			return recv + "[" + e.Field + "]", precPostfix, nil
		}
		return recv + "." + e.Field, precPostfix, nil

	case *rust.IndexExpr:
		recv, err := w.receiver(e.Expr)
		if err != nil {
			return "", 0, err
		}
		index, err := w.expr(e.Index)
		if err != nil {
			return "", 0, err
		}
		return recv + "[" + index + "]", precPostfix, nil

	case *rust.StructLit:
		if len(e.Fields) == 0 {
			return "{}", precPrimary, nil
		}
		fields := make([]string, len(e.Fields))
		for i, init := range e.Fields {
			value, err := w.expr(init.Value)
			if err != nil {
				return "", 0, err
			}
			if init.Shorthand && value == init.Name {
				fields[i] = init.Name
			} else {
				fields[i] = init.Name + ": " + value
			}
		}
		return "{ " + strings.Join(fields, ", ") + " }", precPrimary, nil

	case *rust.ArrayLit:
		elems, err := w.list(e.Elems)
		if err != nil {
			return "", 0, err
		}
		return "[" + elems + "]", precPrimary, nil

	case *rust.TupleLit:
		if len(e.Elems) == 0 {
			return "undefined", precPrimary, nil
		}
		elems, err := w.list(e.Elems)
		if err != nil {
			return "", 0, err
		}
		return "[" + elems + "]", precPrimary, nil

	case *rust.ParenExpr:
		inner, err := w.expr(e.Expr)
		if err != nil {
			return "", 0, err
		}
		return "(" + inner + ")", precPrimary, nil
	}

	if e == nil {
		return "", 0, internalError(nil, "missing expression")
	}
	return "", 0, internalError(e, "no rendering rule for expression %T", e)
}

// receiver renders the left side of a member access or index. A bare
// number literal is parenthesized so its dot is not read as a decimal
// point.
func (w *Writer) receiver(e rust.Expr) (string, error) {
	if lit, ok := e.(*rust.Literal); ok && (lit.Kind == rust.LitInt || lit.Kind == rust.LitFloat) {
		s, err := literal(lit)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil
	}
	return w.operand(e, precPostfix)
}

func (w *Writer) list(exprs []rust.Expr) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := w.expr(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// Literals

func literal(l *rust.Literal) (string, error) {
	switch l.Kind {
	case rust.LitInt:
		return formatInt(l.Value), nil
	case rust.LitFloat:
		return formatFloat(l.Value), nil
	case rust.LitString, rust.LitChar:
		return quote(l.Value), nil
	case rust.LitBool:
		return l.Value, nil
	}
	return "", internalError(l, "unknown literal kind %d", l.Kind)
}

// formatInt renders an integer literal without separators. Radix prefixes
// are kept; leading zeros of decimal literals are dropped since TypeScript
// reads them as legacy octal.
func formatInt(v string) string {
	sign, digits := splitSign(v)
	digits = strings.ReplaceAll(digits, "_", "")
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'o', 'b':
			return sign + digits
		}
	}
	return sign + trimLeadingZeros(digits)
}

// formatFloat renders a float literal without separators, completing a
// bare trailing decimal point.
func formatFloat(v string) string {
	sign, digits := splitSign(v)
	digits = trimLeadingZeros(strings.ReplaceAll(digits, "_", ""))
	if strings.HasSuffix(digits, ".") {
		digits += "0"
	}
	return sign + digits
}

func splitSign(v string) (string, string) {
	if strings.HasPrefix(v, "-") {
		return "-", v[1:]
	}
	return "", v
}

func trimLeadingZeros(digits string) string {
	for len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		digits = digits[1:]
	}
	return digits
}

// quote renders s as a double-quoted TypeScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\x%02X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
