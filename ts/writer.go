// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"fmt"
	"strings"

	"github.com/opinionated/rs2ts/rust"
)

// Writer generates TypeScript source code from a Rust AST.
type Writer struct {
	module  *rust.Module
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Name management. names maps every source identifier to its
	// module-wide TypeScript name; scopes hold the bindings of the
	// function being written, innermost last.
	namer  *namer
	names  map[string]string
	items  map[string]struct{}
	scopes []map[string]string
}

// namer generates unique identifiers.
type namer struct {
	usedNames map[string]struct{}
}

func newNamer(reserved ...string) *namer {
	n := &namer{
		usedNames: make(map[string]struct{}),
	}
	for _, name := range reserved {
		n.usedNames[name] = struct{}{}
	}
	return n
}

// call generates a unique name based on the given base.
func (n *namer) call(base string) string {
	escaped := escapeKeyword(base)

	if _, used := n.usedNames[escaped]; !used {
		n.usedNames[escaped] = struct{}{}
		return escaped
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", escaped, i)
		if _, used := n.usedNames[candidate]; !used {
			n.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}

func newWriter(module *rust.Module, options *Options) *Writer {
	var reserved []string
	if options.WrapperTypes {
		reserved = []string{"Number", "Boolean", "String"}
	}
	return &Writer{
		module:  module,
		options: options,
		namer:   newNamer(reserved...),
		names:   make(map[string]string),
		items:   make(map[string]struct{}, len(module.Items)),
	}
}

// String returns the generated TypeScript source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeModule generates TypeScript code for the entire module, one item at
// a time in declaration order.
func (w *Writer) writeModule() error {
	w.registerNames()

	for i, item := range w.module.Items {
		if i > 0 {
			w.writeLine("")
		}
		if err := w.writeItem(item); err != nil {
			return err
		}
	}
	return nil
}

// registerNames assigns a TypeScript name to every identifier in the
// module. Names that are already valid keep their spelling and are claimed
// first, so escaped keywords can never collide with them.
func (w *Writer) registerNames() {
	var keywords []string
	seen := make(map[string]bool)
	claim := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		if isKeyword(name) {
			keywords = append(keywords, name)
			return
		}
		w.names[name] = w.namer.call(name)
	}

	for _, item := range w.module.Items {
		w.items[item.ItemName()] = struct{}{}
	}
	rust.Inspect(w.module, func(n rust.Node) bool {
		switch n := n.(type) {
		case rust.Item:
			claim(n.ItemName())
		case *rust.Param:
			claim(n.Name)
		case *rust.LetStmt:
			claim(n.Name)
		case *rust.Ident:
			claim(n.Name)
		case *rust.NamedType:
			claim(n.Name)
		}
		return true
	})

	for _, name := range keywords {
		w.names[name] = w.namer.call(name)
	}
}

// name resolves a source identifier in the current scope.
func (w *Writer) name(src string) string {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if ts, ok := w.scopes[i][src]; ok {
			return ts
		}
	}
	return w.globalName(src)
}

// bind declares a local binding in the innermost scope. A binding that
// shadows anything visible gets a fresh name: TypeScript forbids
// redeclaration in one block, and an inner declaration would put the outer
// one in its temporal dead zone.
func (w *Writer) bind(src string) string {
	ts := w.name(src)
	if w.visible(src) {
		ts = w.namer.call(src)
	}
	w.scopes[len(w.scopes)-1][src] = ts
	return ts
}

func (w *Writer) visible(src string) bool {
	if _, ok := w.items[src]; ok {
		return true
	}
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if _, ok := w.scopes[i][src]; ok {
			return true
		}
	}
	return false
}

func (w *Writer) pushScope() {
	w.scopes = append(w.scopes, make(map[string]string))
}

func (w *Writer) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// globalName resolves a name outside any local scope.
func (w *Writer) globalName(src string) string {
	if ts, ok := w.names[src]; ok {
		return ts
	}
	return escapeKeyword(src)
}

// typeName maps a type through the writer's namer. Types live in their own
// namespace, so local bindings never affect them.
func (w *Writer) typeName(t rust.Type) (string, error) {
	return mapType(t, *w.options, w.globalName)
}

func (w *Writer) export(pub bool) string {
	if pub && w.options.ExportPublic {
		return "export "
	}
	return ""
}

// Items

func (w *Writer) writeItem(item rust.Item) error {
	switch item := item.(type) {
	case *rust.ConstDecl:
		return w.writeConst(item)
	case *rust.FunctionDecl:
		return w.writeFunction(item)
	case *rust.StructDecl:
		return w.writeStruct(item)
	case *rust.EnumDecl:
		return w.writeEnum(item)
	}
	return internalError(item, "no rendering rule for item %T", item)
}

// writeConst writes const N: T = value;
func (w *Writer) writeConst(c *rust.ConstDecl) error {
	typ, err := w.typeName(c.Type)
	if err != nil {
		return err
	}
	value, err := w.expr(c.Value)
	if err != nil {
		return err
	}
	w.writeLine("%sconst %s: %s = %s;", w.export(c.Pub), w.name(c.Name), typ, value)
	return nil
}

// writeFunction writes a function declaration. A function with a non-unit
// return type returns its tail expression.
func (w *Writer) writeFunction(fn *rust.FunctionDecl) error {
	w.pushScope()
	defer w.popScope()

	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		typ, err := w.typeName(param.Type)
		if err != nil {
			return err
		}
		name := w.name(param.Name)
		w.scopes[len(w.scopes)-1][param.Name] = name
		params[i] = name + ": " + typ
	}

	ret := "void"
	returns := fn.ReturnType != nil && !isUnit(fn.ReturnType)
	if returns {
		typ, err := w.typeName(fn.ReturnType)
		if err != nil {
			return err
		}
		ret = typ
	}

	header := fmt.Sprintf("%sfunction %s(%s): %s", w.export(fn.Pub), w.name(fn.Name), strings.Join(params, ", "), ret)
	if isEmpty(fn.Body) {
		w.writeLine("%s {}", header)
		return nil
	}

	w.writeLine("%s {", header)
	w.pushIndent()
	if err := w.writeBody(fn.Body, returns); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

// writeStruct writes an interface for named and unit structs and a tuple
// type alias for tuple structs.
func (w *Writer) writeStruct(s *rust.StructDecl) error {
	export := w.export(s.Pub)
	name := w.name(s.Name)

	switch s.Kind {
	case rust.StructTuple:
		elems := make([]string, len(s.Elems))
		for i, elem := range s.Elems {
			typ, err := w.typeName(elem)
			if err != nil {
				return err
			}
			elems[i] = typ
		}
		w.writeLine("%stype %s = [%s];", export, name, strings.Join(elems, ", "))
		return nil

	case rust.StructNamed, rust.StructUnit:
		if len(s.Fields) == 0 {
			w.writeLine("%sinterface %s {}", export, name)
			return nil
		}
		w.writeLine("%sinterface %s {", export, name)
		w.pushIndent()
		for _, field := range s.Fields {
			typ, err := w.typeName(field.Type)
			if err != nil {
				return err
			}
			w.writeLine("%s: %s;", field.Name, typ)
		}
		w.popIndent()
		w.writeLine("}")
		return nil
	}
	return internalError(s, "unknown struct kind %d", s.Kind)
}

// writeEnum writes a fieldless enum as a union of string literal tags.
func (w *Writer) writeEnum(e *rust.EnumDecl) error {
	if len(e.Variants) == 0 {
		w.writeLine("%stype %s = never;", w.export(e.Pub), w.name(e.Name))
		return nil
	}
	tags := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		tags[i] = quote(v.Name)
	}
	w.writeLine("%stype %s = %s;", w.export(e.Pub), w.name(e.Name), strings.Join(tags, " | "))
	return nil
}

// Output helpers

// writeLine writes a line with indentation and newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	if format != "" {
		w.writeIndent()
	}
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
