package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables read by ApplyEnv.
const (
	EnvRsEdition    = "RS2TS_RS_EDITION"
	EnvStrategy     = "RS2TS_STRATEGY"
	EnvTsMajor      = "RS2TS_TS_MAJOR"
	EnvWrapperTypes = "RS2TS_WRAPPER_TYPES"
	EnvExportPublic = "RS2TS_EXPORT_PUB"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads a YAML configuration file. Keys that are absent keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration on top of Default. Unknown keys are
// rejected. An empty document yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides c with the RS2TS_* variables that lookup reports as
// set. Pass os.LookupEnv to read the process environment.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvRsEdition); ok {
		c.RsEdition = RsEdition(strings.ToLower(v))
	}
	if v, ok := lookup(EnvStrategy); ok {
		c.Strategy = Strategy(strings.ToLower(v))
	}
	if v, ok := lookup(EnvTsMajor); ok {
		c.TsMajor = TsMajor(strings.ToLower(v))
	}
	if v, ok := lookup(EnvWrapperTypes); ok {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %q is not a boolean", ErrInvalid, EnvWrapperTypes, v)
		}
		c.WrapperTypes = on
	}
	if v, ok := lookup(EnvExportPublic); ok {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %q is not a boolean", ErrInvalid, EnvExportPublic, v)
		}
		c.ExportPublic = on
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that every field holds a known value.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
