// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import (
	"strings"
	"testing"
)

// renderExpr compiles source as the initializer of a constant and returns
// the rendered initializer.
func renderExpr(t *testing.T, source string) string {
	t.Helper()
	out := compileSource(t, "const X: i32 = "+source+";", DefaultOptions())
	const prefix = "const X: number = "
	if !strings.HasPrefix(out, prefix) || !strings.HasSuffix(out, ";\n") {
		t.Fatalf("unexpected output %q", out)
	}
	return strings.TrimSuffix(strings.TrimPrefix(out, prefix), ";\n")
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"a + b * c", "a + b * c"},
		{"a * (b + c)", "a * (b + c)"},
		{"a - b - c", "a - b - c"},
		{"a == b && c != d", "a === b && c !== d"},
		{"a || b && c", "a || b && c"},
		{"1 << 2 + 3", "1 << 2 + 3"},
		{"a | b ^ c & d", "a | b ^ c & d"},
		// Rust binds bit operators tighter than comparisons.
		{"a | b == c", "(a | b) === c"},
		{"a & b != 0", "(a & b) !== 0"},
		{"a ^ b < c", "(a ^ b) < c"},
		{"- -5", "-(-5)"},
		{"-(-x)", "-(-x)"},
		{"2 - -1", "2 - -1"},
		{"!(a && b)", "!(a && b)"},
		{"!true", "!true"},
		{"-a.b", "-a.b"},
		{"-5.abs", "-(5).abs"},
		{"(a)", "(a)"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderExpr(t, tt.source); got != tt.want {
				t.Errorf("render(%s) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestExpressionPostfix(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"f(1, 2)[0].len", "f(1, 2)[0].len"},
		{"f(-1)", "f(-1)"},
		{"t.0.1", "t[0][1]"},
		{"x[i + 1]", "x[i + 1]"},
		{"[1, 2][0]", "[1, 2][0]"},
		{"(1, 2).0", "[1, 2][0]"},
		{"p.len()", "p.len()"},
		{"&y", "y"},
		{"&&y", "y"},
		{"&mut y", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := renderExpr(t, tt.source); got != tt.want {
				t.Errorf("render(%s) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestExpressionLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"const S: &str = \"a\\\"b\\n\";", "const S: string = \"a\\\"b\\n\";\n"},
		{"const C: char = '\\'';", "const C: string = \"'\";\n"},
		{"const F: f64 = 1.;", "const F: number = 1.0;\n"},
		{"const B: u64 = 1_000_000u64;", "const B: number = 1000000;\n"},
		{"const H: u32 = 0xFF_u32;", "const H: number = 0xFF;\n"},
		{"const O: i32 = 007;", "const O: number = 7;\n"},
		{"const N: f32 = -0.5;", "const N: number = -0.5;\n"},
		{"const T: bool = true;", "const T: boolean = true;\n"},
		{"const U: () = ();", "const U: void = undefined;\n"},
		{"const A: [i32; 2] = [1, 2];", "const A: number[] = [1, 2];\n"},
		{"const P: (i32, bool) = (1, false);", "const P: [number, boolean] = [1, false];\n"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := compileSource(t, tt.source, DefaultOptions()); got != tt.want {
				t.Errorf("Compile(%s) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4", "4"},
		{"0", "0"},
		{"00", "0"},
		{"1_000", "1000"},
		{"007", "7"},
		{"-5", "-5"},
		{"-0_1", "-1"},
		{"0x1F_", "0x1F"},
		{"0b1010", "0b1010"},
		{"0o17", "0o17"},
	}

	for _, tt := range tests {
		if got := formatInt(tt.input); got != tt.want {
			t.Errorf("formatInt(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3.14", "3.14"},
		{"1.", "1.0"},
		{"0.5", "0.5"},
		{"1_000.5", "1000.5"},
		{"43.21e_10", "43.21e10"},
		{"007.5", "7.5"},
		{"-2.5", "-2.5"},
		{"1e5", "1e5"},
	}

	for _, tt := range tests {
		if got := formatFloat(tt.input); got != tt.want {
			t.Errorf("formatFloat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc", `"abc"`},
		{"", `""`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"\n\r\t", `"\n\r\t"`},
		{"\x00", `"\x00"`},
		{"\x1b", `"\x1B"`},
		{"\x7f", `"\x7F"`},
		{"\u2028\u2029", `"\u2028\u2029"`},
		{"'", `"'"`},
		{"\u00e9\U0001F600", "\"\u00e9\U0001F600\""},
	}

	for _, tt := range tests {
		if got := quote(tt.input); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
