package regtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokharness/tok-test-harness/leaks"
)

func TestCaseIDForms(t *testing.T) {
	id := CaseID{ID: "greet", Lang: "en"}
	assert.Equal(t, "greet.en", id.String())
	assert.Equal(t, "greet (en)", id.Label())
}

func TestEmptyResults(t *testing.T) {
	var r Results
	assert.True(t, r.OK())
	assert.Equal(t, 0, r.ExitCode())
	assert.Len(t, r.Tally(), 0)
	assert.Len(t, r.Artifacts(), 0)
}

func TestExitCodeCountsNonPassingCases(t *testing.T) {
	var r Results
	r.Add(CaseID{"a", "en"}, PassedOutcome())
	r.Add(CaseID{"b", "en"}, LeakyOutcome(leaks.Summary{Errors: 1}, "o/b.en.err"))
	r.Add(CaseID{"c", "en"}, FailedOutcome("o/c.en.diff", "o/c.en.err"))
	r.Add(CaseID{"d", "en"}, CrashedOutcome(139, "o/d.en.err"))
	r.Add(CaseID{"e", "en"}, MissingOutcome())
	r.Add(CaseID{"f", "nl"}, MissingOutcome())
	r.Add(CaseID{"g", "nl"}, PassedOutcome())

	assert.False(t, r.OK())
	assert.Equal(t, 4, r.ExitCode())
	assert.Equal(t, 2, r.Count(OK))
	assert.Equal(t, 2, r.Count(Missing))

	var failedIDs []string
	for _, f := range r.Failures() {
		failedIDs = append(failedIDs, f.ID.String())
	}
	assert.Equal(t, []string{"c.en", "d.en", "e.en", "f.nl"}, failedIDs)

	assert.Equal(t, []string{"o/b.en.err", "o/c.en.diff", "o/c.en.err", "o/d.en.err"}, r.Artifacts())

	assert.Equal(t, []KindCount{
		{OK, 2}, {OKWithLeaks, 1}, {Failed, 1}, {Crashed, 1}, {Missing, 2},
	}, r.Tally())
}

func TestExitCodeIsClamped(t *testing.T) {
	var r Results
	for i := 0; i < 300; i++ {
		r.Add(CaseID{"x", "en"}, MissingOutcome())
	}
	assert.Equal(t, 255, r.ExitCode())
}

func TestOutcomeKindPassed(t *testing.T) {
	assert.True(t, OK.Passed())
	assert.True(t, OKWithLeaks.Passed())
	assert.False(t, Failed.Passed())
	assert.False(t, Crashed.Passed())
	assert.False(t, Missing.Passed())
}
