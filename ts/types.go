// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"strings"

	"github.com/opinionated/rs2ts/rust"
)

// primitiveTypes maps every Rust primitive to its TypeScript annotation.
// Integer width and signedness are not representable and collapse to number.
var primitiveTypes = [...]string{
	rust.PrimU8:     "number",
	rust.PrimU16:    "number",
	rust.PrimU32:    "number",
	rust.PrimU64:    "number",
	rust.PrimU128:   "number",
	rust.PrimUsize:  "number",
	rust.PrimI8:     "number",
	rust.PrimI16:    "number",
	rust.PrimI32:    "number",
	rust.PrimI64:    "number",
	rust.PrimI128:   "number",
	rust.PrimIsize:  "number",
	rust.PrimF32:    "number",
	rust.PrimF64:    "number",
	rust.PrimBool:   "boolean",
	rust.PrimChar:   "string",
	rust.PrimStr:    "string",
	rust.PrimString: "string",
}

// wrapperTypes holds the boxed spellings used with Options.WrapperTypes.
var wrapperTypes = map[string]string{
	"number":  "Number",
	"boolean": "Boolean",
	"string":  "String",
}

// MapType returns the TypeScript annotation for a Rust type. References are
// erased, arrays and slices become T[], tuples become [A, B] and the unit
// type becomes void. Named types keep their identifier, escaped when it is
// a TypeScript keyword.
//
// MapType panics on a type node the parser cannot produce.
func MapType(t rust.Type, options Options) string {
	s, err := mapType(t, options, escapeKeyword)
	if err != nil {
		panic(err)
	}
	return s
}

func mapType(t rust.Type, options Options, name func(string) string) (string, error) {
	switch t := t.(type) {
	case *rust.PrimitiveType:
		if int(t.Kind) >= len(primitiveTypes) {
			return "", internalError(t, "unknown primitive kind %d", t.Kind)
		}
		s := primitiveTypes[t.Kind]
		if options.WrapperTypes {
			s = wrapperTypes[s]
		}
		return s, nil

	case *rust.NamedType:
		return name(t.Name), nil

	case *rust.RefType:
		return mapType(t.Elem, options, name)

	case *rust.ArrayType:
		elem, err := mapType(t.Elem, options, name)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil

	case *rust.SliceType:
		elem, err := mapType(t.Elem, options, name)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil

	case *rust.TupleType:
		if t.IsUnit() {
			return "void", nil
		}
		elems := make([]string, len(t.Elems))
		for i, elem := range t.Elems {
			s, err := mapType(elem, options, name)
			if err != nil {
				return "", err
			}
			elems[i] = s
		}
		return "[" + strings.Join(elems, ", ") + "]", nil
	}

	if t == nil {
		return "", internalError(nil, "missing type")
	}
	return "", internalError(t, "no type mapping for %T", t)
}

// isUnit reports whether t is (), possibly behind references.
func isUnit(t rust.Type) bool {
	switch t := t.(type) {
	case *rust.TupleType:
		return t.IsUnit()
	case *rust.RefType:
		return isUnit(t.Elem)
	}
	return false
}
