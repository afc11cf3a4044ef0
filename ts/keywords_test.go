// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

import "testing"

func TestEscapeKeyword(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"new", "_new"},
		{"class", "_class"},
		{"this", "_this"},
		{"function", "_function"},
		{"let", "_let"},
		{"await", "_await"},
		{"undefined", "_undefined"},
		{"number", "_number"},
		{"string", "_string"},
		{"x", "x"},
		{"Point", "Point"},
		{"type", "type"},
		{"_new", "_new"},
	}

	for _, tt := range tests {
		if got := escapeKeyword(tt.input); got != tt.expected {
			t.Errorf("escapeKeyword(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNamerUniqueness(t *testing.T) {
	n := newNamer("Number")

	tests := []struct {
		base string
		want string
	}{
		{"x", "x"},
		{"x", "x_1"},
		{"x", "x_2"},
		{"new", "_new"},
		{"new", "_new_1"},
		{"Number", "Number_1"},
	}

	for _, tt := range tests {
		if got := n.call(tt.base); got != tt.want {
			t.Errorf("call(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}
