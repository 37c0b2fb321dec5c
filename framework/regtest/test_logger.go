package regtest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tokharness/tok-test-harness/framework"
)

// statusColumn is the width that "Testing: <id> (<lang>)" is padded to, so the status words line up.
const statusColumn = 50

const inspectSeparator = "--------------------------"

var consolePassedColor = color.New(color.FgGreen, color.Bold) //nolint:gochecknoglobals
var consoleLeakColor = color.New(color.FgBlue, color.Bold)    //nolint:gochecknoglobals
var consoleFailedColor = color.New(color.FgRed, color.Bold)   //nolint:gochecknoglobals
var consoleTallyColor = color.New(color.Faint)                //nolint:gochecknoglobals

// TestLogger receives progress information as a run proceeds.
type TestLogger interface {
	CaseStarted(id CaseID)
	CaseFinished(id CaseID, outcome Outcome, debugOutput framework.CapturedOutput)
	EndLog(results Results) error
}

type nullTestLogger struct{}

func NullTestLogger() TestLogger { return nullTestLogger{} }

func (n nullTestLogger) CaseStarted(CaseID)                                     {}
func (n nullTestLogger) CaseFinished(CaseID, Outcome, framework.CapturedOutput) {}
func (n nullTestLogger) EndLog(Results) error                                   { return nil }

// ConsoleTestLogger prints one status line per case, and a list of the files to inspect at the end.
type ConsoleTestLogger struct {
	// Out defaults to os.Stdout.
	Out io.Writer

	// DebugOutputOnFailure causes the harness's own debug messages for a case to be shown if it
	// did not pass.
	DebugOutputOnFailure bool
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) CaseStarted(id CaseID) {
	msg := "Testing: " + id.Label()
	if pad := statusColumn - len(msg); pad > 0 {
		msg += strings.Repeat(" ", pad)
	}
	_, _ = fmt.Fprint(c.out(), msg+" ")
}

func (c ConsoleTestLogger) CaseFinished(id CaseID, outcome Outcome, debugOutput framework.CapturedOutput) {
	w := c.out()
	switch outcome.Kind {
	case OK:
		_, _ = consolePassedColor.Fprintln(w, "OK")
	case OKWithLeaks:
		_, _ = consoleLeakColor.Fprintf(w, "OK, but valgrind says: %d errors, %d bytes lost\n",
			outcome.Leaks.Errors, outcome.Leaks.BytesLost)
	case Failed:
		_, _ = consoleFailedColor.Fprintln(w, "FAILED")
	case Crashed:
		_, _ = consoleFailedColor.Fprintln(w, "CRASHED!!!")
	case Missing:
		_, _ = consoleFailedColor.Fprintln(w, "MISSING")
	}
	if c.DebugOutputOnFailure && !outcome.Kind.Passed() && len(debugOutput) > 0 {
		_, _ = consoleTallyColor.Fprintln(w, debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleTestLogger) EndLog(results Results) error {
	w := c.out()
	if artifacts := results.Artifacts(); len(artifacts) > 0 {
		fmt.Fprintln(w, inspectSeparator)
		fmt.Fprintln(w, "Files to inspect:")
		for _, a := range artifacts {
			fmt.Fprintln(w, a)
		}
	}
	if results.Interrupted {
		_, _ = consoleFailedColor.Fprintln(w, "Run interrupted, remaining cases were not tested")
	}
	tally := results.Tally()
	if len(tally) == 0 {
		return nil
	}
	parts := make([]string, 0, len(tally))
	for _, kc := range tally {
		parts = append(parts, fmt.Sprintf("%d %s", kc.Count, kc.Kind))
	}
	_, _ = consoleTallyColor.Fprintf(w, "%d cases: %s\n", len(results.Cases), strings.Join(parts, ", "))
	return nil
}

// MultiTestLogger passes everything on to each of its Loggers in turn.
type MultiTestLogger struct {
	Loggers []TestLogger
}

func (m *MultiTestLogger) CaseStarted(id CaseID) {
	for _, l := range m.Loggers {
		l.CaseStarted(id)
	}
}

func (m *MultiTestLogger) CaseFinished(id CaseID, outcome Outcome, debugOutput framework.CapturedOutput) {
	for _, l := range m.Loggers {
		l.CaseFinished(id, outcome, debugOutput)
	}
}

// EndLog calls EndLog on every logger, and returns the first error if any.
func (m *MultiTestLogger) EndLog(results Results) error {
	var firstErr error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
