// Package settings holds the harness configuration that is not given on the command line: which
// tool to run, where to put its output, and how to instrument it. Settings can be read from a
// YAML file; JSON, being a subset of YAML, is accepted too.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/tokharness/tok-test-harness/framework/harness"
)

const (
	DefaultTool       = "ucto"
	DefaultOutputDir  = "testoutput"
	DefaultDebugLevel = 5

	// InstrumentationEnvVar names the environment variable holding the instrumentation prefix.
	InstrumentationEnvVar = "VG"
)

// Settings is the complete configuration of a run.
type Settings struct {
	// Tool is the path of the tokenizer binary.
	Tool string `yaml:"tool"`

	// OutputDir receives produced output, logs and diffs. It is created if it does not exist.
	OutputDir string `yaml:"outputDir"`

	// DebugLevel is the verbosity of the rerun that follows a mismatch.
	DebugLevel int `yaml:"debugLevel"`

	// ExtraArgs are passed to the tool on every invocation.
	ExtraArgs []string `yaml:"extraArgs"`

	// Instrumentation is the command prefix, such as "valgrind --leak-check=full", that every
	// normal invocation is wrapped with. Empty disables instrumentation.
	Instrumentation string `yaml:"instrumentation"`
}

// Defaults returns the settings used when nothing else is specified.
func Defaults() Settings {
	return Settings{
		Tool:       DefaultTool,
		OutputDir:  DefaultOutputDir,
		DebugLevel: DefaultDebugLevel,
	}
}

// Load reads a settings file on top of base. Properties missing from the file keep the values
// from base; unknown properties are an error, so that a misspelled name is not silently ignored.
func Load(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return base, fmt.Errorf("cannot read settings file: %w", err)
	}
	ret := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ret); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("error parsing settings file %q: %w", path, err)
	}
	return ret, ret.Validate()
}

// WithEnvironment applies the instrumentation environment variable, if it is set and non-empty.
// lookup is normally os.LookupEnv.
func (s Settings) WithEnvironment(lookup func(string) (string, bool)) Settings {
	if value, ok := lookup(InstrumentationEnvVar); ok && value != "" {
		s.Instrumentation = value
	}
	return s
}

// Validate reports settings that cannot work.
func (s Settings) Validate() error {
	if s.Tool == "" {
		return fmt.Errorf("no tool specified")
	}
	if s.OutputDir == "" {
		return fmt.Errorf("no output directory specified")
	}
	if s.DebugLevel < 0 {
		return fmt.Errorf("debug level must not be negative, got %d", s.DebugLevel)
	}
	return nil
}

// HarnessTool returns the tool description that these settings define.
func (s Settings) HarnessTool() harness.Tool {
	return harness.Tool{
		Binary:    s.Tool,
		Prefix:    harness.ParsePrefix(s.Instrumentation),
		ExtraArgs: s.ExtraArgs,
	}
}
