package main

import (
	"context"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tokharness/tok-test-harness/framework"
	"github.com/tokharness/tok-test-harness/framework/regtest"
	"github.com/tokharness/tok-test-harness/settings"
	"github.com/tokharness/tok-test-harness/suite"
)

// setupFailureExitCode is used when the run could not start at all.
const setupFailureExitCode = 1

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(setupFailureExitCode)
	}
	if params.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	if params.debug {
		fmt.Printf("tok-test-harness v%s\n", strings.TrimSpace(versionString))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	results, err := run(ctx, params)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(setupFailureExitCode)
	}
	os.Exit(results.ExitCode())
}

func run(ctx context.Context, params commandParams) (*regtest.Results, error) {
	harnessSettings, err := params.Settings(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	mainDebugLogger := framework.NullLogger()
	if params.debug {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	var testLogger regtest.TestLogger
	consoleLogger := regtest.ConsoleTestLogger{DebugOutputOnFailure: params.debug}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		testLogger = &regtest.MultiTestLogger{Loggers: []regtest.TestLogger{
			consoleLogger,
			regtest.NewJUnitTestLogger(params.jUnitFile, reportProperties(params, harnessSettings)),
		}}
	}

	params.filters.Describe(os.Stdout)

	results, err := suite.RunTokenizerSuite(ctx, suite.Config{
		Pattern:     params.pattern,
		OutputDir:   harnessSettings.OutputDir,
		Tool:        harnessSettings.HarnessTool(),
		DebugLevel:  harnessSettings.DebugLevel,
		Filter:      params.filters,
		TestLogger:  testLogger,
		DebugLogger: mainDebugLogger,
	})
	if err != nil {
		return nil, err
	}

	if logErr := testLogger.EndLog(results); logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return nil, err
		}
	}

	return &results, nil
}

func reportProperties(params commandParams, s settings.Settings) map[string]string {
	return map[string]string{
		"harness.version":         strings.TrimSpace(versionString),
		"harness.glob":            params.pattern,
		"harness.tool":            s.Tool,
		"harness.instrumentation": s.Instrumentation,
		"harness.filter.run":      params.filters.MustMatch.String(),
		"harness.filter.skip":     params.filters.MustNotMatch.String(),
	}
}

func recordFailures(path string, results regtest.Results) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot create failures file: %v", err)
	}
	for _, c := range results.Failures() {
		fmt.Fprintln(f, c.ID)
	}
	return f.Close()
}
