// Package rs2ts transpiles a subset of Rust to TypeScript.
//
// The subset covers const, fn, struct and fieldless enum declarations and
// the statements and expressions commonly found in their bodies. Input
// outside the subset is rejected with an ErrUnsupportedConstruct error; no
// partial output is ever produced.
//
// Example usage:
//
//	out, err := rs2ts.Transpile(`const FOUR: u8 = 4;`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out) // const FOUR: number = 4;
//
// Individual stages are available through Tokenize, Parse and Generate, or
// directly through the rust and ts packages:
//
//	tokens, _ := rust.NewLexer(source).Tokenize()
//	module, _ := rust.NewParser(tokens).Parse()
//	_ = rust.Check(module)
//	code, err := ts.Compile(module, ts.DefaultOptions())
package rs2ts

import (
	"io"
	"log/slog"

	"github.com/opinionated/rs2ts/config"
	"github.com/opinionated/rs2ts/rust"
	"github.com/opinionated/rs2ts/ts"
)

// Transpile converts Rust source to TypeScript using the default
// configuration.
func Transpile(source string) (string, error) {
	return New(config.Default()).Transpile(source)
}

// TranspileWithConfig converts Rust source to TypeScript using cfg.
func TranspileWithConfig(source string, cfg config.Config) (string, error) {
	return New(cfg).Transpile(source)
}

// Transpiler runs the pipeline with a fixed configuration. It is safe for
// concurrent use.
type Transpiler struct {
	cfg    config.Config
	logger *slog.Logger
}

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithLogger sets the logger that receives stage diagnostics at debug
// level. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transpiler) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New returns a Transpiler for cfg. Logging is discarded unless WithLogger
// is given.
func New(cfg config.Config, opts ...Option) *Transpiler {
	t := &Transpiler{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the configuration the Transpiler was built with.
func (t *Transpiler) Config() config.Config {
	return t.cfg
}

// Transpile converts Rust source to TypeScript.
//
// The pipeline is:
//  1. Validate the configuration
//  2. Tokenize the source
//  3. Parse tokens to an AST and resolve names
//  4. Generate TypeScript
//
// Any failure is returned as an *Error and no output is produced.
func (t *Transpiler) Transpile(source string) (string, error) {
	if err := t.cfg.Validate(); err != nil {
		return "", wrap(err, source)
	}
	if err := t.cfg.Implemented(); err != nil {
		return "", wrap(err, source)
	}

	tokens, err := Tokenize(source)
	if err != nil {
		t.logger.Debug("tokenize failed", "error", err)
		return "", err
	}
	t.logger.Debug("tokenized", "tokens", len(tokens))

	module, err := parseTokens(tokens, source)
	if err != nil {
		t.logger.Debug("parse failed", "error", err)
		return "", err
	}
	t.logger.Debug("parsed", "items", len(module.Items))

	out, err := generate(module, t.options(), source)
	if err != nil {
		t.logger.Error("generate failed", "error", err)
		return "", err
	}
	t.logger.Debug("generated", "bytes", len(out))
	return out, nil
}

func (t *Transpiler) options() ts.Options {
	return ts.Options{
		WrapperTypes: t.cfg.WrapperTypes,
		ExportPublic: t.cfg.ExportPublic,
	}
}

// Tokenize lexes source into tokens ending with a single EOF token.
func Tokenize(source string) ([]rust.Token, error) {
	tokens, err := rust.NewLexer(source).Tokenize()
	if err != nil {
		return nil, wrap(err, source)
	}
	return tokens, nil
}

// Parse lexes, parses and checks source.
func Parse(source string) (*rust.Module, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parseTokens(tokens, source)
}

// Generate renders a checked module as TypeScript using the default
// configuration.
func Generate(module *rust.Module) (string, error) {
	return generate(module, ts.DefaultOptions(), "")
}

func parseTokens(tokens []rust.Token, source string) (*rust.Module, error) {
	module, err := rust.NewParser(tokens).Parse()
	if err != nil {
		return nil, wrap(err, source)
	}
	if err := rust.Check(module); err != nil {
		return nil, wrap(err, source)
	}
	return module, nil
}

func generate(module *rust.Module, options ts.Options, source string) (string, error) {
	out, err := ts.Compile(module, options)
	if err != nil {
		return "", wrap(err, source)
	}
	return out, nil
}
