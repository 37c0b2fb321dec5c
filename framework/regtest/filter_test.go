package regtest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFilters(t *testing.T, run, skip []string) RegexFilters {
	t.Helper()
	var f RegexFilters
	for _, s := range run {
		require.NoError(t, f.MustMatch.Set(s))
	}
	for _, s := range skip {
		require.NoError(t, f.MustNotMatch.Set(s))
	}
	return f
}

func TestRegexFilters(t *testing.T) {
	type params struct {
		run, skip   []string
		id          CaseID
		shouldMatch bool
	}
	for _, p := range []params{
		{nil, nil, CaseID{"a", "en"}, true},
		{[]string{`\.en$`}, nil, CaseID{"a", "en"}, true},
		{[]string{`\.en$`}, nil, CaseID{"a", "nl"}, false},
		{[]string{`^a\.`, `^b\.`}, nil, CaseID{"b", "nl"}, true},
		{nil, []string{"quotes"}, CaseID{"quotes-1", "en"}, false},
		{nil, []string{"quotes"}, CaseID{"abbrev", "en"}, true},
		{[]string{`\.en$`}, []string{"^a"}, CaseID{"a", "en"}, false},
		{[]string{`\.en$`}, []string{"^a"}, CaseID{"b", "en"}, true},
	} {
		f := makeFilters(t, p.run, p.skip)
		assert.Equal(t, p.shouldMatch, f.Match(p.id), "run=%v skip=%v id=%s", p.run, p.skip, p.id)
	}
}

func TestPatternListRejectsBadRegex(t *testing.T) {
	var l PatternList
	assert.Error(t, l.Set("("))
	assert.False(t, l.IsDefined())
}

func TestRegexFiltersDescribe(t *testing.T) {
	var buf bytes.Buffer
	RegexFilters{}.Describe(&buf)
	assert.Equal(t, "", buf.String())

	makeFilters(t, []string{"a", "b"}, []string{"c"}).Describe(&buf)
	assert.Equal(t, `Some cases will be skipped based on the filter criteria for this run:
  skip any not matching "a" or "b"
  skip any matching "c"

`, buf.String())
}
