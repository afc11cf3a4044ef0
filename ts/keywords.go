// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ts

// tsKeywords contains names that cannot be used as TypeScript bindings or
// type names in module code.
var tsKeywords = map[string]struct{}{
	// ECMAScript reserved words
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},

	// Strict mode and module code
	"implements": {}, "interface": {}, "let": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "static": {}, "yield": {}, "await": {},

	// Restricted or shadowed globals
	"arguments": {}, "eval": {}, "undefined": {}, "NaN": {}, "Infinity": {},

	// Predefined type names
	"any": {}, "boolean": {}, "number": {}, "string": {}, "symbol": {},
	"never": {}, "unknown": {}, "object": {}, "bigint": {},
}

// isKeyword reports whether name is reserved in TypeScript.
func isKeyword(name string) bool {
	_, ok := tsKeywords[name]
	return ok
}

// escapeKeyword prefixes reserved names with an underscore.
func escapeKeyword(name string) string {
	if isKeyword(name) {
		return "_" + name
	}
	return name
}
