package suite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tokharness/tok-test-harness/compare"
	"github.com/tokharness/tok-test-harness/fixtures"
	"github.com/tokharness/tok-test-harness/framework"
	"github.com/tokharness/tok-test-harness/framework/harness"
	"github.com/tokharness/tok-test-harness/framework/regtest"
	"github.com/tokharness/tok-test-harness/leaks"
)

// Config contains the options for a run.
type Config struct {
	// FixtureDir is the directory a relative Pattern is matched in. Defaults to the current
	// directory. Reference files are always looked up next to their input file.
	FixtureDir string

	// Pattern is the glob that selects input files; see fixtures.Discover.
	Pattern string

	// OutputDir receives produced output, logs and diffs. It is created if necessary.
	OutputDir string

	Tool harness.Tool

	// DebugLevel is passed to the tool when rerunning a case whose output did not match.
	DebugLevel int

	// Runner executes tool invocations. Defaults to harness.OSRunner.
	Runner harness.Runner

	// Filter is an optional way to select a subset of the discovered cases.
	Filter regtest.Filter

	// TestLogger receives the status of each case.
	TestLogger regtest.TestLogger

	// DebugLogger receives the harness's own diagnostics that are not about a single case, such as
	// skipped files. Messages about a case are passed to TestLogger with its outcome instead.
	DebugLogger framework.Logger

	// Out receives general messages that are not about a specific case. Defaults to os.Stdout.
	Out io.Writer
}

// RunTokenizerSuite discovers the test cases and runs them one at a time, in discovery order.
// An error is returned only if the run could not be set up; problems with individual cases are
// reported in their outcomes.
//
// The run stops early, with Results.Interrupted set, if the tool exits with
// harness.StatusCancel or if ctx is cancelled.
func RunTokenizerSuite(ctx context.Context, config Config) (regtest.Results, error) {
	config = withDefaults(config)

	cases, err := fixtures.Discover(config.FixtureDir, config.Pattern, config.DebugLogger)
	if err != nil {
		return regtest.Results{}, fmt.Errorf("invalid pattern %q: %w", config.Pattern, err)
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil { //nolint:gosec
		return regtest.Results{}, fmt.Errorf("cannot create output directory: %w", err)
	}
	if config.Tool.Instrumented() {
		fmt.Fprintf(config.Out, "testing with '%s'. This is slow!\n", strings.Join(config.Tool.Prefix, " "))
	}

	var results regtest.Results
	for _, tc := range cases {
		id := regtest.CaseID{ID: tc.ID, Lang: tc.Lang}
		if config.Filter != nil && !config.Filter.Match(id) {
			config.DebugLogger.Printf("Skipping %s, excluded by filter parameters", id)
			continue
		}
		if ctx.Err() != nil {
			results.Interrupted = true
			break
		}

		var captured framework.CapturingLogger
		c := &caseRun{
			config:    config,
			testCase:  tc,
			logger:    framework.LoggerWithPrefix(&captured, "["+id.String()+"] "),
			logPath:   filepath.Join(config.OutputDir, tc.Stem()+".err"),
			diffPath:  filepath.Join(config.OutputDir, tc.Stem()+".diff"),
			inputPath: tc.InputPath(),
		}
		config.TestLogger.CaseStarted(id)
		outcome, cancelled := c.run(ctx)
		results.Add(id, outcome)
		config.TestLogger.CaseFinished(id, outcome, captured.Output())
		if cancelled {
			results.Interrupted = true
			break
		}
	}
	return results, nil
}

func withDefaults(config Config) Config {
	if config.FixtureDir == "" {
		config.FixtureDir = "."
	}
	if config.Pattern == "" {
		config.Pattern = fixtures.DefaultPattern
	}
	if config.Runner == nil {
		config.Runner = harness.OSRunner{}
	}
	if config.TestLogger == nil {
		config.TestLogger = regtest.NullTestLogger()
	}
	if config.DebugLogger == nil {
		config.DebugLogger = framework.NullLogger()
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return config
}

// caseRun holds the state of a single case while it is being processed.
type caseRun struct {
	config    Config
	testCase  fixtures.TestCase
	logger    framework.Logger
	inputPath string
	logPath   string
	diffPath  string
}

// run takes the case from Discovered to a final outcome. The second return value is true if the
// tool signalled that the whole run should stop.
func (c *caseRun) run(ctx context.Context) (regtest.Outcome, bool) {
	ref, ok := fixtures.Resolve(c.testCase)
	if !ok {
		c.logger.Printf("No reference file found")
		return regtest.MissingOutcome(), false
	}
	c.logger.Printf("Using %s reference %s", ref.Kind, ref.Path)

	outputPath := filepath.Join(c.config.OutputDir, ref.OutputName(c.testCase))
	inv := c.config.Tool.Invocation(ref.Kind.ModeFlags(), c.testCase.Lang, c.inputPath, outputPath, c.logPath)
	status := c.invoke(ctx, inv)
	if !status.OK() {
		return regtest.CrashedOutcome(int(status), c.logPath), status.IsCancel()
	}

	req := compare.Request{
		ReferencePath: ref.Path,
		OutputPath:    outputPath,
		DiffPath:      c.diffPath,
		NormalizedDir: c.config.OutputDir,
	}
	if ref.Kind.Structured() {
		req.Rules = compare.XMLRules
	}
	verdict, err := compare.Compare(req)
	if err != nil {
		c.logger.Printf("Comparison failed: %s", err)
		return regtest.FailedOutcome(c.logPath), false
	}
	if !verdict.Match {
		c.logger.Printf("Output differs from reference, see %s", verdict.DiffPath)
		c.rerunForDiagnostics(ctx, ref, outputPath)
		return regtest.FailedOutcome(c.diffPath, c.logPath), false
	}

	if !c.config.Tool.Instrumented() {
		return regtest.PassedOutcome(), false
	}
	summary, err := leaks.ParseFile(c.logPath)
	if err != nil {
		c.logger.Printf("Could not read instrumentation summary: %s", err)
		return regtest.PassedOutcome(), false
	}
	if summary.Clean() {
		return regtest.PassedOutcome(), false
	}
	return regtest.LeakyOutcome(summary, c.logPath), false
}

func (c *caseRun) invoke(ctx context.Context, inv harness.Invocation) harness.ExitStatus {
	c.logger.Printf("Running: %s", inv.CommandLine())
	status, err := c.config.Runner.Run(ctx, inv)
	if err != nil {
		c.logger.Printf("Could not run tool: %s", err)
		return harness.StatusNotStarted
	}
	if !status.OK() {
		c.logger.Printf("Tool exited with status %d", status)
	}
	return status
}

// rerunForDiagnostics runs the tool again at a high debug level, so that the log left behind for
// a failed case is as informative as possible. Its result does not affect the outcome.
func (c *caseRun) rerunForDiagnostics(ctx context.Context, ref fixtures.Reference, outputPath string) {
	inv := c.config.Tool.DebugInvocation(c.config.DebugLevel, ref.Kind.ModeFlags(),
		c.testCase.Lang, c.inputPath, outputPath, c.logPath)
	_ = c.invoke(ctx, inv)
}
