// Package config controls how Rust source is transpiled to TypeScript.
//
// A Config names the Rust edition of the input, the TypeScript major version
// of the output and the transpilation strategy, plus output options. Only
// Rust 2018, TypeScript 4 and the gungho strategy are implemented; the other
// values are accepted so that configurations stay forward compatible, and
// are rejected by Implemented.
//
//	cfg := config.Default().WithWrapperTypes(true)
//	fmt.Println(cfg) // Latest Rust edition (2018), Latest TypeScript (4), Gungho
package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RsEdition is the edition of Rust that the input is written in.
type RsEdition string

const (
	// RsEditionLatest is the most recent supported edition, 2018.
	RsEditionLatest RsEdition = "latest"
	// RsEdition2015 is a placeholder and not implemented.
	RsEdition2015 RsEdition = "2015"
	// RsEdition2018 is the only implemented edition.
	RsEdition2018 RsEdition = "2018"
)

// Strategy selects how Rust constructs are rendered.
type Strategy string

const (
	// StrategyGungho favours readable output that resembles the input.
	StrategyGungho Strategy = "gungho"
	// StrategyCautious favours safety over readability. It is a
	// placeholder and not implemented.
	StrategyCautious Strategy = "cautious"
)

// TsMajor is the TypeScript major version to output.
type TsMajor string

const (
	// TsMajorLatest is the most recent supported version, 4.
	TsMajorLatest TsMajor = "latest"
	// TsMajor3 is a placeholder and not implemented.
	TsMajor3 TsMajor = "3"
	// TsMajor4 is the only implemented version.
	TsMajor4 TsMajor = "4"
)

// ErrNotImplemented is wrapped by the errors Implemented returns.
var ErrNotImplemented = errors.New("not implemented yet")

// Config controls a transpilation.
type Config struct {
	RsEdition RsEdition `yaml:"rs_edition" validate:"required,oneof=latest 2015 2018"`
	Strategy  Strategy  `yaml:"strategy" validate:"required,oneof=gungho cautious"`
	TsMajor   TsMajor   `yaml:"ts_major" validate:"required,oneof=latest 3 4"`

	// WrapperTypes annotates primitives as Number, Boolean and String.
	WrapperTypes bool `yaml:"wrapper_types"`

	// ExportPublic exports pub items.
	ExportPublic bool `yaml:"export_pub"`
}

// Default returns the default configuration: latest Rust edition, latest
// TypeScript, gungho strategy, pub items exported.
func Default() Config {
	return Config{
		RsEdition:    RsEditionLatest,
		Strategy:     StrategyGungho,
		TsMajor:      TsMajorLatest,
		ExportPublic: true,
	}
}

// WithRsEdition returns a copy of c with the Rust edition replaced.
func (c Config) WithRsEdition(edition RsEdition) Config {
	c.RsEdition = edition
	return c
}

// WithStrategy returns a copy of c with the strategy replaced.
func (c Config) WithStrategy(strategy Strategy) Config {
	c.Strategy = strategy
	return c
}

// WithTsMajor returns a copy of c with the TypeScript major version replaced.
func (c Config) WithTsMajor(major TsMajor) Config {
	c.TsMajor = major
	return c
}

// WithWrapperTypes returns a copy of c with WrapperTypes set.
func (c Config) WithWrapperTypes(on bool) Config {
	c.WrapperTypes = on
	return c
}

// WithExportPublic returns a copy of c with ExportPublic set.
func (c Config) WithExportPublic(on bool) Config {
	c.ExportPublic = on
	return c
}

// String summarizes the edition, TypeScript version and strategy.
func (c Config) String() string {
	var b strings.Builder

	switch c.RsEdition {
	case RsEditionLatest:
		b.WriteString("Latest Rust edition (2018), ")
	default:
		fmt.Fprintf(&b, "Rust edition %s, ", c.RsEdition)
	}

	switch c.TsMajor {
	case TsMajorLatest:
		b.WriteString("Latest TypeScript (4), ")
	default:
		fmt.Fprintf(&b, "TypeScript %s, ", c.TsMajor)
	}

	switch c.Strategy {
	case StrategyGungho:
		b.WriteString("Gungho")
	case StrategyCautious:
		b.WriteString("Cautious")
	default:
		b.WriteString(string(c.Strategy))
	}
	return b.String()
}

// Implemented reports the first placeholder value in c, checking the
// edition, then the strategy, then the TypeScript version.
func (c Config) Implemented() error {
	if c.RsEdition == RsEdition2015 {
		return fmt.Errorf("rust edition 2015 is %w", ErrNotImplemented)
	}
	if c.Strategy == StrategyCautious {
		return fmt.Errorf("strategy cautious is %w", ErrNotImplemented)
	}
	if c.TsMajor == TsMajor3 {
		return fmt.Errorf("typescript 3 is %w", ErrNotImplemented)
	}
	return nil
}

// YAML renders c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// UnmarshalYAML accepts the edition in any case, quoted or not.
func (e *RsEdition) UnmarshalYAML(value *yaml.Node) error {
	return scalar(value, e)
}

// UnmarshalYAML accepts the strategy in any case.
func (s *Strategy) UnmarshalYAML(value *yaml.Node) error {
	return scalar(value, s)
}

// UnmarshalYAML accepts the version quoted or not.
func (m *TsMajor) UnmarshalYAML(value *yaml.Node) error {
	return scalar(value, m)
}

func scalar[T ~string](value *yaml.Node, out *T) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	*out = T(strings.ToLower(strings.TrimSpace(value.Value)))
	return nil
}
