package rust

import (
	"errors"
	"testing"
)

func checkSource(t *testing.T, source string) *Module {
	t.Helper()
	module := parseSource(t, source)
	if err := Check(module); err != nil {
		t.Fatalf("check %q failed: %v", source, err)
	}
	return module
}

func TestCheckEnumVariantPath(t *testing.T) {
	module := checkSource(t, "enum Color { Red, Green } const C: Color = Color::Green;")

	path, ok := module.Items[1].(*ConstDecl).Value.(*PathExpr)
	if !ok {
		t.Fatalf("Expected path, got %T", module.Items[1].(*ConstDecl).Value)
	}
	if path.Variant != "Green" {
		t.Errorf("Expected variant Green, got %q", path.Variant)
	}
}

func TestCheckEnumDeclaredLater(t *testing.T) {
	module := checkSource(t, "fn f() -> Dir { Dir::Up } enum Dir { Up }")
	tail := module.Items[0].(*FunctionDecl).Body.Tail.(*PathExpr)
	if tail.Variant != "Up" {
		t.Errorf("Expected forward reference to resolve, got %q", tail.Variant)
	}
}

func TestCheckTupleStructCall(t *testing.T) {
	module := checkSource(t, "struct P(i32, i32); fn f() -> P { P(1, 2) } fn g() -> i32 { f2(1) } fn f2(x: i32) -> i32 { x }")

	call := module.Items[1].(*FunctionDecl).Body.Tail.(*CallExpr)
	if !call.TupleStruct {
		t.Error("Expected P(1, 2) to be marked as a tuple struct constructor")
	}
	plain := module.Items[2].(*FunctionDecl).Body.Tail.(*CallExpr)
	if plain.TupleStruct {
		t.Error("Expected f2(1) to stay a function call")
	}
}

func TestCheckUnitStructValue(t *testing.T) {
	module := checkSource(t, "struct Marker; fn f() -> Marker { Marker } fn g(x: i32) -> i32 { x }")

	if id := module.Items[1].(*FunctionDecl).Body.Tail.(*Ident); !id.UnitStruct {
		t.Error("Expected Marker to be marked as a unit struct value")
	}
	if id := module.Items[2].(*FunctionDecl).Body.Tail.(*Ident); id.UnitStruct {
		t.Error("Expected x to stay a plain identifier")
	}
}

func TestCheckUnsupportedPaths(t *testing.T) {
	tests := []struct {
		source    string
		construct string
	}{
		{"enum Color { Red } const C: Color = Color::Blue;", "path `Color::Blue`"},
		{"const C: i32 = a::b::c;", "path `a::b::c`"},
		{"fn f() { std::process::exit(1); }", "call through path `std::process::exit`"},
		{"enum E { A } fn f() { E::A(1); }", "call through path `E::A`"},
	}

	for _, tt := range tests {
		err := Check(parseSource(t, tt.source))
		var unsupported *UnsupportedError
		if !errors.As(err, &unsupported) {
			t.Errorf("%q: expected *UnsupportedError, got %v", tt.source, err)
			continue
		}
		if unsupported.Construct != tt.construct {
			t.Errorf("%q: expected construct %q, got %q", tt.source, tt.construct, unsupported.Construct)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{
			name:    "duplicate item",
			source:  "const A: i32 = 1; fn A() {}",
			message: "the name `A` is defined multiple times",
		},
		{
			name:    "duplicate field",
			source:  "struct S { x: i32, x: bool }",
			message: "field `x` is already declared",
		},
		{
			name:    "duplicate variant",
			source:  "enum E { A, B, A }",
			message: "the name `A` is defined multiple times",
		},
		{
			name:    "duplicate parameter",
			source:  "fn f(a: i32, a: i32) {}",
			message: "identifier `a` is bound more than once in this parameter list",
		},
		{
			name:    "named struct called",
			source:  "struct S { x: i32 } fn f() { S(1); }",
			message: "expected function, found struct `S`",
		},
		{
			name:    "unit struct called",
			source:  "struct U; fn f() { U(); }",
			message: "expected function, found struct `U`",
		},
		{
			name:    "enum as value",
			source:  "enum E { A } fn f() { let e = E; }",
			message: "expected value, found enum `E`",
		},
		{
			name:    "enum as struct literal",
			source:  "enum E { A } fn f() { let e = E { x: 1 }; }",
			message: "expected struct, found enum `E`",
		},
		{
			name:    "unknown field",
			source:  "struct S { x: i32 } fn f() -> S { S { y: 1 } }",
			message: "struct `S` has no field named `y`",
		},
		{
			name:    "repeated field init",
			source:  "struct S { x: i32 } fn f() -> S { S { x: 1, x: 2 } }",
			message: "field `x` specified more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parseSource(t, tt.source))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %v", err)
			}
			if parseErr.Message != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, parseErr.Message)
			}
		})
	}
}

func TestCheckErrorPosition(t *testing.T) {
	err := Check(parseSource(t, "fn f(a: i32,\n     a: bool) {}"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %v", err)
	}
	if parseErr.Token.Pos.Line != 2 || parseErr.Token.Pos.Column != 6 {
		t.Errorf("Expected 2:6, got %d:%d", parseErr.Token.Pos.Line, parseErr.Token.Pos.Column)
	}
	if parseErr.Expected != "unique name" {
		t.Errorf("Expected unique name, got %q", parseErr.Expected)
	}
}

func TestCheckUnknownStructLiteral(t *testing.T) {
	// Struct literals naming undeclared types are passed through.
	checkSource(t, "fn f() { let p = Elsewhere { a: 1 }; }")
}
