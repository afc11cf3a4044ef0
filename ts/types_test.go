// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"testing"

	"github.com/opinionated/rs2ts/rust"
)

func TestMapTypePrimitives(t *testing.T) {
	tests := []struct {
		kind    rust.PrimitiveKind
		want    string
		wrapped string
	}{
		{rust.PrimU8, "number", "Number"},
		{rust.PrimU16, "number", "Number"},
		{rust.PrimU32, "number", "Number"},
		{rust.PrimU64, "number", "Number"},
		{rust.PrimU128, "number", "Number"},
		{rust.PrimUsize, "number", "Number"},
		{rust.PrimI8, "number", "Number"},
		{rust.PrimI16, "number", "Number"},
		{rust.PrimI32, "number", "Number"},
		{rust.PrimI64, "number", "Number"},
		{rust.PrimI128, "number", "Number"},
		{rust.PrimIsize, "number", "Number"},
		{rust.PrimF32, "number", "Number"},
		{rust.PrimF64, "number", "Number"},
		{rust.PrimBool, "boolean", "Boolean"},
		{rust.PrimChar, "string", "String"},
		{rust.PrimStr, "string", "String"},
		{rust.PrimString, "string", "String"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			typ := &rust.PrimitiveType{Kind: tt.kind}
			if got := MapType(typ, Options{}); got != tt.want {
				t.Errorf("MapType(%s) = %q, want %q", tt.kind, got, tt.want)
			}
			if got := MapType(typ, Options{WrapperTypes: true}); got != tt.wrapped {
				t.Errorf("MapType(%s, wrapper) = %q, want %q", tt.kind, got, tt.wrapped)
			}
		})
	}
}

// Every primitive the lexer knows must have a non-empty annotation.
func TestMapTypeTotal(t *testing.T) {
	for kind := rust.PrimU8; kind <= rust.PrimString; kind++ {
		if got := MapType(&rust.PrimitiveType{Kind: kind}, Options{}); got == "" {
			t.Errorf("MapType(%s) is empty", kind)
		}
	}
}

func TestMapTypeCompound(t *testing.T) {
	i32 := &rust.PrimitiveType{Kind: rust.PrimI32}
	str := &rust.PrimitiveType{Kind: rust.PrimStr}

	tests := []struct {
		name string
		typ  rust.Type
		want string
	}{
		{"named", &rust.NamedType{Name: "Point"}, "Point"},
		{"named keyword", &rust.NamedType{Name: "number"}, "_number"},
		{"ref", &rust.RefType{Elem: str}, "string"},
		{"mut ref", &rust.RefType{Mutable: true, Elem: i32}, "number"},
		{"ref ref", &rust.RefType{Elem: &rust.RefType{Elem: i32}}, "number"},
		{"array", &rust.ArrayType{Elem: i32, Len: &rust.Literal{Kind: rust.LitInt, Value: "3"}}, "number[]"},
		{"slice", &rust.SliceType{Elem: str}, "string[]"},
		{"nested array", &rust.ArrayType{Elem: &rust.SliceType{Elem: i32}}, "number[][]"},
		{"tuple", &rust.TupleType{Elems: []rust.Type{i32, str}}, "[number, string]"},
		{"one-tuple", &rust.TupleType{Elems: []rust.Type{i32}}, "[number]"},
		{"unit", &rust.TupleType{}, "void"},
		{"tuple array", &rust.SliceType{Elem: &rust.TupleType{Elems: []rust.Type{i32, i32}}}, "[number, number][]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapType(tt.typ, Options{}); got != tt.want {
				t.Errorf("MapType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapTypePanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MapType(nil) did not panic")
		}
	}()
	MapType(nil, Options{})
}

func TestIsUnit(t *testing.T) {
	if !isUnit(&rust.TupleType{}) {
		t.Error("() should be unit")
	}
	if !isUnit(&rust.RefType{Elem: &rust.TupleType{}}) {
		t.Error("&() should be unit")
	}
	if isUnit(&rust.PrimitiveType{Kind: rust.PrimBool}) {
		t.Error("bool should not be unit")
	}
}
