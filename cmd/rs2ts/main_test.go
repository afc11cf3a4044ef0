package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opinionated/rs2ts"
	"github.com/opinionated/rs2ts/config"
)

// execute runs the command tree with args and a fixed environment.
func execute(t *testing.T, env map[string]string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	var outBuf, errBuf bytes.Buffer
	cmd := newRootCmd(lookup)
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestArg(t *testing.T) {
	out, _, err := execute(t, nil, "arg", "const FOUR: u8 = 4;")
	require.NoError(t, err)
	assert.Equal(t, "const FOUR: number = 4;\n", out)
}

func TestArgWrapperTypes(t *testing.T) {
	out, _, err := execute(t, nil, "--wrapper-types", "arg", "const ROUGHLY_PI: f32 = 3.14;")
	require.NoError(t, err)
	assert.Equal(t, "const ROUGHLY_PI: Number = 3.14;\n", out)
}

func TestArgTranspileError(t *testing.T) {
	out, _, err := execute(t, nil, "arg", `const S: &str = "abc;`)
	assert.Empty(t, out)

	var terr *rs2ts.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, rs2ts.ErrLex, terr.Kind)
	assert.Equal(t, 16, terr.Offset)
}

func TestArgRequiresSource(t *testing.T) {
	_, _, err := execute(t, nil, "arg")
	assert.Error(t, err)
}

func TestFileToStdout(t *testing.T) {
	path := writeFile(t, "lib.rs", "struct P { x: i32, y: i32 }\n")

	out, _, err := execute(t, nil, "file", path)
	require.NoError(t, err)
	assert.Equal(t, "interface P {\n    x: number;\n    y: number;\n}\n", out)
}

func TestFileToOutput(t *testing.T) {
	path := writeFile(t, "lib.rs", "pub enum Dir { Up, Down }\n")
	target := filepath.Join(t.TempDir(), "lib.ts")

	out, _, err := execute(t, nil, "file", "-o", target, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "export type Dir = \"Up\" | \"Down\";\n", string(data))
}

func TestFileMissing(t *testing.T) {
	_, _, err := execute(t, nil, "file", filepath.Join(t.TempDir(), "missing.rs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTokens(t *testing.T) {
	path := writeFile(t, "lib.rs", "const A: i32 = 1;")

	out, _, err := execute(t, nil, "tokens", path)
	require.NoError(t, err)

	want := "Lexemes found: 7\n" +
		"Keyword             0  const\n" +
		"Identifier          6  A\n" +
		"Punctuation         7  :\n" +
		"Identifier          9  i32\n" +
		"Punctuation        13  =\n" +
		"Number             15  1\n" +
		"Punctuation        16  ;\n" +
		"EndOfInput         17  <EOI>\n"
	assert.Equal(t, want, out)
}

func TestConfigSummary(t *testing.T) {
	out, _, err := execute(t, nil, "config")
	require.NoError(t, err)
	assert.Equal(t, config.Default().String()+"\n", out)
}

func TestConfigPrecedence(t *testing.T) {
	path := writeFile(t, "rs2ts.yml", "wrapper_types: true\nexport_pub: false\n")
	env := map[string]string{config.EnvExportPublic: "true"}

	out, _, err := execute(t, env, "--config", path, "--wrapper-types=false", "config", "--yaml")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.False(t, cfg.WrapperTypes, "flag overrides file")
	assert.True(t, cfg.ExportPublic, "environment overrides file")
}

func TestConfigFlagsValidated(t *testing.T) {
	_, _, err := execute(t, nil, "--strategy", "reckless", "config")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestConfigNotImplemented(t *testing.T) {
	_, _, err := execute(t, nil, "--ts-major", "3", "arg", "const A: i32 = 1;")

	var terr *rs2ts.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, rs2ts.ErrConfigNotImplemented, terr.Kind)
	assert.Equal(t, "typescript 3 is not implemented yet", terr.Message)
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, logs, err := execute(t, nil, "--verbose", "arg", "const A: i32 = 1;")
	require.NoError(t, err)
	assert.Equal(t, "const A: number = 1;\n", out)
	assert.Contains(t, logs, "level=DEBUG")
	assert.Contains(t, logs, "msg=tokenized")
}

func TestQuietByDefault(t *testing.T) {
	_, logs, err := execute(t, nil, "arg", "const A: i32 = 1;")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "rs2ts version "+rs2tsVersion+"\n", out)
}
