package suite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/tokharness/tok-test-harness/framework"
	"github.com/tokharness/tok-test-harness/framework/harness"
	"github.com/tokharness/tok-test-harness/framework/regtest"
)

// writeFixtures extracts a txtar archive into a new temporary directory and returns its path.
func writeFixtures(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}
	return dir
}

// fakeBehavior is what fakeRunner does when asked to process one input file.
type fakeBehavior struct {
	status   harness.ExitStatus
	output   string
	log      string
	noOutput bool // exit successfully without creating the output file
}

// fakeRunner stands in for the tokenizer. It writes the configured output to the output file
// named on the command line (the last argument) and the configured log to the stderr target.
type fakeRunner struct {
	behaviors   map[string]fakeBehavior // keyed by input file base name
	invocations []harness.Invocation
	err         error
}

func (f *fakeRunner) Run(_ context.Context, inv harness.Invocation) (harness.ExitStatus, error) {
	f.invocations = append(f.invocations, inv)
	if f.err != nil {
		return harness.StatusNotStarted, f.err
	}
	argc := len(inv.Argv)
	input, output := filepath.Base(inv.Argv[argc-2]), inv.Argv[argc-1]
	b := f.behaviors[input]
	if inv.Stderr != "" {
		if err := os.WriteFile(inv.Stderr, []byte(b.log), 0o600); err != nil {
			return harness.StatusNotStarted, err
		}
	}
	if b.status == harness.StatusOK && !b.noOutput {
		if err := os.WriteFile(output, []byte(b.output), 0o600); err != nil {
			return harness.StatusNotStarted, err
		}
	}
	return b.status, nil
}

func (f *fakeRunner) argvs() [][]string {
	ret := make([][]string, 0, len(f.invocations))
	for _, inv := range f.invocations {
		ret = append(ret, inv.Argv)
	}
	return ret
}

type recordingTestLogger struct {
	events      []string
	debugOutput map[string]string
}

func (r *recordingTestLogger) CaseStarted(id regtest.CaseID) {
	r.events = append(r.events, "start "+id.String())
}

func (r *recordingTestLogger) CaseFinished(id regtest.CaseID, o regtest.Outcome, debugOutput framework.CapturedOutput) {
	r.events = append(r.events, "finish "+id.String()+" "+o.Kind.String())
	if r.debugOutput == nil {
		r.debugOutput = make(map[string]string)
	}
	r.debugOutput[id.String()] = debugOutput.ToString("")
}

func (r *recordingTestLogger) EndLog(regtest.Results) error { return nil }
