package regtest

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tokharness/tok-test-harness/leaks"
)

// maxExitCode is the largest exit status that survives being passed to the operating system.
const maxExitCode = 255

// CaseID identifies one test case.
type CaseID struct {
	ID   string
	Lang string
}

// String returns the <id>.<lang> form that filters are matched against.
func (c CaseID) String() string {
	return c.ID + "." + c.Lang
}

// Label is the human-readable form used in status lines.
func (c CaseID) Label() string {
	return fmt.Sprintf("%s (%s)", c.ID, c.Lang)
}

// OutcomeKind is the final state of a test case.
type OutcomeKind int

const (
	OK OutcomeKind = iota
	OKWithLeaks
	Failed
	Crashed
	Missing
)

func (k OutcomeKind) String() string {
	switch k {
	case OK:
		return "ok"
	case OKWithLeaks:
		return "ok with leaks"
	case Failed:
		return "failed"
	case Crashed:
		return "crashed"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// Passed returns true for the kinds that do not count against the exit code.
func (k OutcomeKind) Passed() bool {
	return k == OK || k == OKWithLeaks
}

// Outcome is the result of running one test case. It is created once and never modified.
type Outcome struct {
	Kind OutcomeKind

	// Leaks is what the instrumentation reported; only set for OKWithLeaks.
	Leaks leaks.Summary

	// ExitStatus is the tool's exit status; only set for Crashed.
	ExitStatus int

	// Artifacts are the files a developer should look at to understand a non-OK outcome.
	Artifacts []string
}

func PassedOutcome() Outcome { return Outcome{Kind: OK} }

func LeakyOutcome(summary leaks.Summary, logPath string) Outcome {
	return Outcome{Kind: OKWithLeaks, Leaks: summary, Artifacts: []string{logPath}}
}

// FailedOutcome lists the artifacts that exist for the failure, normally the diff and the log.
func FailedOutcome(artifacts ...string) Outcome {
	return Outcome{Kind: Failed, Artifacts: artifacts}
}

func CrashedOutcome(exitStatus int, logPath string) Outcome {
	return Outcome{Kind: Crashed, ExitStatus: exitStatus, Artifacts: []string{logPath}}
}

func MissingOutcome() Outcome { return Outcome{Kind: Missing} }

type CaseResult struct {
	ID      CaseID
	Outcome Outcome
}

// Results accumulates the outcomes of a run, in the order the cases were run.
type Results struct {
	Cases []CaseResult

	// Interrupted is true if the run was stopped before all cases were processed.
	Interrupted bool
}

// KindCount is one line of a Tally.
type KindCount struct {
	Kind  OutcomeKind
	Count int
}

func (r *Results) Add(id CaseID, outcome Outcome) {
	r.Cases = append(r.Cases, CaseResult{ID: id, Outcome: outcome})
}

func (r Results) Count(kind OutcomeKind) int {
	n := 0
	for _, c := range r.Cases {
		if c.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// Failures returns the cases that did not pass.
func (r Results) Failures() []CaseResult {
	var ret []CaseResult
	for _, c := range r.Cases {
		if !c.Outcome.Kind.Passed() {
			ret = append(ret, c)
		}
	}
	return ret
}

// Artifacts returns the files to inspect for every case that was not a clean OK.
func (r Results) Artifacts() []string {
	var ret []string
	for _, c := range r.Cases {
		ret = append(ret, c.Outcome.Artifacts...)
	}
	return ret
}

func (r Results) OK() bool {
	return len(r.Failures()) == 0
}

// ExitCode is the number of failed, crashed and missing cases, limited to what an exit status
// can represent.
func (r Results) ExitCode() int {
	n := len(r.Failures())
	if n > maxExitCode {
		return maxExitCode
	}
	return n
}

// Tally returns the number of cases of each kind that occurred, ordered by kind.
func (r Results) Tally() []KindCount {
	counts := make(map[OutcomeKind]int)
	for _, c := range r.Cases {
		counts[c.Outcome.Kind]++
	}
	kinds := maps.Keys(counts)
	slices.Sort(kinds)
	ret := make([]KindCount, 0, len(kinds))
	for _, k := range kinds {
		ret = append(ret, KindCount{Kind: k, Count: counts[k]})
	}
	return ret
}
