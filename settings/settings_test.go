package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokharness/tok-test-harness/framework/harness"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeSettings(t, "harness.yml", `
tool: ../src/.libs/ucto
extraArgs: ["-Q"]
instrumentation: valgrind --leak-check=full
`)
	s, err := Load(path, Defaults())
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Tool:            "../src/.libs/ucto",
		OutputDir:       DefaultOutputDir,
		DebugLevel:      DefaultDebugLevel,
		ExtraArgs:       []string{"-Q"},
		Instrumentation: "valgrind --leak-check=full",
	}, s)
}

func TestLoadJSON(t *testing.T) {
	path := writeSettings(t, "harness.json", `{"outputDir": "out", "debugLevel": 9}`)
	s, err := Load(path, Defaults())
	require.NoError(t, err)
	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, 9, s.DebugLevel)
	assert.Equal(t, DefaultTool, s.Tool)
}

func TestLoadEmptyFileKeepsBase(t *testing.T) {
	s, err := Load(writeSettings(t, "empty.yml", ""), Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadRejectsUnknownProperties(t *testing.T) {
	_, err := Load(writeSettings(t, "typo.yml", "tool: ucto\noutputdir: out\n"), Defaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outputdir")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"), Defaults())
	assert.Error(t, err)

	_, err = Load(writeSettings(t, "bad.yml", "tool: [unclosed"), Defaults())
	assert.Error(t, err)

	_, err = Load(writeSettings(t, "empty-tool.yml", `tool: ""`), Defaults())
	assert.EqualError(t, err, "no tool specified")

	_, err = Load(writeSettings(t, "negative.yml", "debugLevel: -1"), Defaults())
	assert.Error(t, err)
}

func TestWithEnvironment(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(name string) (string, bool) {
			v, ok := values[name]
			return v, ok
		}
	}
	base := Defaults()
	base.Instrumentation = "from-file"

	assert.Equal(t, "from-file", base.WithEnvironment(env(nil)).Instrumentation)
	assert.Equal(t, "from-file", base.WithEnvironment(env(map[string]string{"VG": ""})).Instrumentation)
	assert.Equal(t, "valgrind -q", base.WithEnvironment(env(map[string]string{"VG": "valgrind -q"})).Instrumentation)
}

func TestHarnessTool(t *testing.T) {
	s := Defaults()
	s.ExtraArgs = []string{"-Q"}
	s.Instrumentation = "valgrind  --leak-check=full"
	assert.Equal(t, harness.Tool{
		Binary:    "ucto",
		Prefix:    []string{"valgrind", "--leak-check=full"},
		ExtraArgs: []string{"-Q"},
	}, s.HarnessTool())

	assert.False(t, Defaults().HarnessTool().Instrumented())
}
