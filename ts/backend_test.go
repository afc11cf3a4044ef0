// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"errors"
	"testing"

	"github.com/opinionated/rs2ts/rust"
)

func parseModule(t *testing.T, source string) *rust.Module {
	t.Helper()
	tokens, err := rust.NewLexer(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	module, err := rust.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return module
}

func compileSource(t *testing.T, source string, options Options) string {
	t.Helper()
	module := parseModule(t, source)
	if err := rust.Check(module); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	out, err := Compile(module, options)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "const",
			source: "const FOUR: u8 = 4;",
			want:   "const FOUR: number = 4;\n",
		},
		{
			name:   "function",
			source: "fn add(a: i32, b: i32) -> i32 { return a + b; }",
			want: "function add(a: number, b: number): number {\n" +
				"    return a + b;\n" +
				"}\n",
		},
		{
			name:   "struct",
			source: "pub struct Point { x: f64, y: f64 }",
			want: "export interface Point {\n" +
				"    x: number;\n" +
				"    y: number;\n" +
				"}\n",
		},
		{
			name:   "enum",
			source: "enum Color { Red, Green, Blue }",
			want:   "type Color = \"Red\" | \"Green\" | \"Blue\";\n",
		},
		{
			name:   "empty enum",
			source: "enum Never {}",
			want:   "type Never = never;\n",
		},
		{
			name:   "tuple struct",
			source: "struct Pair(i32, String);",
			want:   "type Pair = [number, string];\n",
		},
		{
			name:   "unit struct",
			source: "struct Marker;",
			want:   "interface Marker {}\n",
		},
		{
			name:   "tail expression returns",
			source: "fn five() -> i32 { 5 }",
			want: "function five(): number {\n" +
				"    return 5;\n" +
				"}\n",
		},
		{
			name:   "unit tail expression",
			source: "fn f() { g() } fn g() {}",
			want: "function f(): void {\n" +
				"    g();\n" +
				"}\n" +
				"\n" +
				"function g(): void {}\n",
		},
		{
			name:   "explicit unit return type",
			source: "fn f() -> () { () }",
			want: "function f(): void {\n" +
				"}\n",
		},
		{
			name:   "if chain returns from each branch",
			source: "fn sign(x: i32) -> i32 { if x < 0 { -1 } else if x == 0 { 0 } else { 1 } }",
			want: "function sign(x: number): number {\n" +
				"    if (x < 0) {\n" +
				"        return -1;\n" +
				"    } else if (x === 0) {\n" +
				"        return 0;\n" +
				"    } else {\n" +
				"        return 1;\n" +
				"    }\n" +
				"}\n",
		},
		{
			name:   "nested block returns",
			source: "fn f() -> i32 { { 1 } }",
			want: "function f(): number {\n" +
				"    {\n" +
				"        return 1;\n" +
				"    }\n" +
				"}\n",
		},
		{
			name: "loops and bindings",
			source: `fn count() -> u32 {
    let mut n = 0;
    let limit: u32 = 10;
    while n < limit { n += 1; }
    loop { break; }
    while (n > 0) { n -= 1; continue; }
    n
}`,
			want: "function count(): number {\n" +
				"    let n = 0;\n" +
				"    const limit: number = 10;\n" +
				"    while (n < limit) {\n" +
				"        n += 1;\n" +
				"    }\n" +
				"    while (true) {\n" +
				"        break;\n" +
				"    }\n" +
				"    while (n > 0) {\n" +
				"        n -= 1;\n" +
				"        continue;\n" +
				"    }\n" +
				"    return n;\n" +
				"}\n",
		},
		{
			name:   "empty loop",
			source: "fn spin() { loop {} }",
			want: "function spin(): void {\n" +
				"    while (true) {}\n" +
				"}\n",
		},
		{
			name:   "deferred initialization",
			source: "fn f() -> i32 { let y: i32; y = 3; y }",
			want: "function f(): number {\n" +
				"    let y: number;\n" +
				"    y = 3;\n" +
				"    return y;\n" +
				"}\n",
		},
		{
			name:   "bare return",
			source: "fn f(x: bool) { if x { return; } }",
			want: "function f(x: boolean): void {\n" +
				"    if (x) {\n" +
				"        return;\n" +
				"    }\n" +
				"}\n",
		},
		{
			name:   "references are erased",
			source: "fn len(s: &str, v: &mut [u8]) -> usize { 0 }",
			want: "function len(s: string, v: number[]): number {\n" +
				"    return 0;\n" +
				"}\n",
		},
		{
			name:   "object literal statement",
			source: "struct M; fn f() { M; }",
			want: "interface M {}\n" +
				"\n" +
				"function f(): void {\n" +
				"    ({});\n" +
				"}\n",
		},
		{
			name:   "empty module",
			source: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileSource(t, tt.source, DefaultOptions())
			if got != tt.want {
				t.Errorf("Compile() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestCompileStructsAndEnums(t *testing.T) {
	source := `
enum Dir { Up, Down }
struct P { x: i32, y: i32 }
struct T(i32, bool);
struct M;
fn make(x: i32) -> P { P { x, y: 2 } }
fn dir() -> Dir { Dir::Down }
fn tup() -> T { T(1, true) }
fn first(t: T) -> i32 { t.0 }
fn unit() -> M { M }
`
	want := `type Dir = "Up" | "Down";

interface P {
    x: number;
    y: number;
}

type T = [number, boolean];

interface M {}

function make(x: number): P {
    return { x, y: 2 };
}

function dir(): Dir {
    return "Down";
}

function tup(): T {
    return [1, true];
}

function first(t: T): number {
    return t[0];
}

function unit(): M {
    return {};
}
`
	got := compileSource(t, source, DefaultOptions())
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileFieldOrder(t *testing.T) {
	got := compileSource(t, "struct S { y: i32, x: i32, a: bool }", DefaultOptions())
	want := "interface S {\n    y: number;\n    x: number;\n    a: boolean;\n}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileShadowing(t *testing.T) {
	got := compileSource(t, "fn f(x: i32) -> i32 { let x = x + 1; let x = x * 2; x }", DefaultOptions())
	want := "function f(x: number): number {\n" +
		"    const x_1 = x + 1;\n" +
		"    const x_2 = x_1 * 2;\n" +
		"    return x_2;\n" +
		"}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileShadowingGlobal(t *testing.T) {
	got := compileSource(t, "const N: i32 = 1; fn f() -> i32 { let N = N + 1; N }", DefaultOptions())
	want := "const N: number = 1;\n" +
		"\n" +
		"function f(): number {\n" +
		"    const N_1 = N + 1;\n" +
		"    return N_1;\n" +
		"}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileReservedNames(t *testing.T) {
	got := compileSource(t, "fn new(default: i32) -> i32 { let this = default; this }", DefaultOptions())
	want := "function _new(_default: number): number {\n" +
		"    const _this = _default;\n" +
		"    return _this;\n" +
		"}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileReservedNameCollision(t *testing.T) {
	got := compileSource(t, "const _new: i32 = 1; fn new() -> i32 { _new }", DefaultOptions())
	want := "const _new: number = 1;\n" +
		"\n" +
		"function _new_1(): number {\n" +
		"    return _new;\n" +
		"}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileShorthandWithReservedName(t *testing.T) {
	got := compileSource(t, "struct S { delete: bool } fn f(delete: bool) -> S { S { delete } }", DefaultOptions())
	want := "interface S {\n" +
		"    delete: boolean;\n" +
		"}\n" +
		"\n" +
		"function f(_delete: boolean): S {\n" +
		"    return { delete: _delete };\n" +
		"}\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileExportPublic(t *testing.T) {
	source := "pub fn f() {} pub const C: bool = true; pub enum E { A } pub struct S;"

	exported := compileSource(t, source, DefaultOptions())
	want := "export function f(): void {}\n\n" +
		"export const C: boolean = true;\n\n" +
		"export type E = \"A\";\n\n" +
		"export interface S {}\n"
	if exported != want {
		t.Errorf("Compile() with ExportPublic =\n%s\nwant:\n%s", exported, want)
	}

	plain := compileSource(t, source, Options{})
	want = "function f(): void {}\n\n" +
		"const C: boolean = true;\n\n" +
		"type E = \"A\";\n\n" +
		"interface S {}\n"
	if plain != want {
		t.Errorf("Compile() without ExportPublic =\n%s\nwant:\n%s", plain, want)
	}
}

func TestCompileWrapperTypes(t *testing.T) {
	tests := []struct {
		options Options
		want    string
	}{
		{Options{}, "const ROUGHLY_PI: number = 3.14;\n"},
		{Options{WrapperTypes: true}, "const ROUGHLY_PI: Number = 3.14;\n"},
	}

	for _, tt := range tests {
		got := compileSource(t, "const ROUGHLY_PI: f32 = 3.14;", tt.options)
		if got != tt.want {
			t.Errorf("Compile(%+v) = %q, want %q", tt.options, got, tt.want)
		}
	}
}

func TestCompileWrapperTypeNameCollision(t *testing.T) {
	got := compileSource(t, "struct Number; const N: Number = Number;", Options{WrapperTypes: true})
	want := "interface Number_1 {}\n\nconst N: Number_1 = {};\n"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileDeterministic(t *testing.T) {
	source := "fn a(new: i32) -> i32 { let x = new; let x = x + 1; x } struct class { this: i32 }"
	first := compileSource(t, source, DefaultOptions())
	for i := 0; i < 10; i++ {
		if got := compileSource(t, source, DefaultOptions()); got != first {
			t.Fatalf("Compile() is not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestCompileUncheckedModule(t *testing.T) {
	module := parseModule(t, "const C: i32 = E::A;")

	_, err := Compile(module, DefaultOptions())
	var tsErr *Error
	if !errors.As(err, &tsErr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if tsErr.Kind != ErrUncheckedModule {
		t.Errorf("Expected ErrUncheckedModule, got %s", tsErr.Kind)
	}
}

func TestCompileNilModule(t *testing.T) {
	_, err := Compile(nil, DefaultOptions())
	var tsErr *Error
	if !errors.As(err, &tsErr) || tsErr.Kind != ErrInternalError {
		t.Fatalf("Expected internal error, got %v", err)
	}
}

func TestError(t *testing.T) {
	err := &Error{Kind: ErrInternalError, Message: "boom"}
	if err.Error() != "ts InternalError: boom" {
		t.Errorf("Error() = %q", err.Error())
	}

	span := rust.Span{Start: rust.Position{Offset: 4, Line: 2, Column: 3}}
	err = &Error{Kind: ErrUncheckedModule, Message: "unresolved path E::A", Span: &span}
	if err.Error() != "ts UncheckedModule at 2:3: unresolved path E::A" {
		t.Errorf("Error() = %q", err.Error())
	}
}
