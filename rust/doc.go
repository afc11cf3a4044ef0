// Package rust provides lexing, parsing and name resolution for the Rust
// subset that rs2ts translates.
//
// # Components
//
//   - Lexer: Tokenizes Rust source code into tokens
//   - Parser: Parses tokens into an AST (Abstract Syntax Tree)
//   - Check: Resolves enum paths and struct references on the AST
//
// # Usage
//
//	lexer := rust.NewLexer(`const ANSWER: i32 = 42;`)
//	tokens, err := lexer.Tokenize()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	module, err := rust.NewParser(tokens).Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rust.Check(module); err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported subset
//
// Items are const, fn, struct and fieldless enum declarations. Function
// bodies support let bindings, assignment, if/else, while, loop, break,
// continue and return, over literals, paths, struct and array literals,
// calls, field access and indexing. Anything else that is valid Rust is
// reported as an *UnsupportedError rather than a syntax error.
package rust
