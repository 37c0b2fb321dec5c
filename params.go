package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tokharness/tok-test-harness/fixtures"
	"github.com/tokharness/tok-test-harness/framework/regtest"
	"github.com/tokharness/tok-test-harness/settings"
)

type commandParams struct {
	pattern        string
	configFile     string
	tool           string
	outputDir      string
	debugLevel     int
	filters        regtest.RegexFilters
	jUnitFile      string
	recordFailures string
	debug          bool
	noColor        bool

	// setFlags records which flags were given explicitly, so that they can override the
	// settings file.
	setFlags map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	defaults := settings.Defaults()
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] [glob]\n\nThe glob selects input files and defaults to %q.\n\nOptions:\n",
			args[0], fixtures.DefaultPattern)
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nIf $%s is set, it is used as a command prefix (such as valgrind) for every run.\n",
			settings.InstrumentationEnvVar)
	}
	fs.StringVar(&c.configFile, "config", "", "read settings from a JSON or YAML file")
	fs.StringVar(&c.tool, "tool", defaults.Tool, "path of the tokenizer to test")
	fs.StringVar(&c.outputDir, "output-dir", defaults.OutputDir, "directory for produced output, logs and diffs")
	fs.IntVar(&c.debugLevel, "debug-level", defaults.DebugLevel, "debug level for rerunning a failed case")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select cases to run, matched against <id>.<lang>")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select cases not to run")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the IDs of cases that did not pass to the specified path")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging of the harness itself")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	switch fs.NArg() {
	case 0:
		c.pattern = fixtures.DefaultPattern
	case 1:
		c.pattern = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "at most one glob pattern may be given")
		fs.Usage()
		return false
	}
	c.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.setFlags[f.Name] = true })
	return true
}

// Settings combines the defaults, the settings file if any, the command line and the
// environment, in increasing order of precedence.
func (c *commandParams) Settings(lookupEnv func(string) (string, bool)) (settings.Settings, error) {
	s := settings.Defaults()
	if c.configFile != "" {
		var err error
		if s, err = settings.Load(c.configFile, s); err != nil {
			return s, err
		}
	}
	if c.setFlags["tool"] {
		s.Tool = c.tool
	}
	if c.setFlags["output-dir"] {
		s.OutputDir = c.outputDir
	}
	if c.setFlags["debug-level"] {
		s.DebugLevel = c.debugLevel
	}
	s = s.WithEnvironment(lookupEnv)
	return s, s.Validate()
}
