// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ts provides a TypeScript backend for rs2ts.
//
// This package generates TypeScript 4 source code from a checked rust.Module.
//
// # Basic Usage
//
//	source, err := ts.Compile(module, ts.DefaultOptions())
//
// # Type Mapping
//
// MapType is the single place where Rust types are translated. All integer
// and float kinds become number, bool becomes boolean, and char, str and
// String become string. References are erased. Set Options.WrapperTypes
// to emit Number, Boolean and String instead.
//
// # Items
//
// Structs with named fields become interfaces, tuple structs become tuple
// type aliases, and fieldless enums become unions of string literal tags
// whose values are produced by E::V paths.
//
// # Reserved Words
//
// Identifiers that are TypeScript keywords are prefixed with an underscore.
// Local bindings that shadow a visible name are renamed with a numeric
// suffix.
package ts
