package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePriority(t *testing.T) {
	type params struct {
		name     string
		present  []string
		expected ReferenceKind
	}
	for _, p := range []params{
		{"aligned only", []string{"a.en.tok.V"}, AlignedTokens},
		{"plain only", []string{"a.en.tok"}, PlainTokens},
		{"xml only", []string{"a.en.xml"}, StructuredXML},
		{"aligned beats xml", []string{"a.en.tok.V", "a.en.xml"}, AlignedTokens},
		{"aligned beats plain", []string{"a.en.tok", "a.en.tok.V"}, AlignedTokens},
		{"plain beats xml", []string{"a.en.xml", "a.en.tok"}, PlainTokens},
	} {
		t.Run(p.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, p.present...)

			ref, ok := Resolve(TestCase{ID: "a", Lang: "en", Dir: dir})
			require.True(t, ok)
			assert.Equal(t, p.expected, ref.Kind)
			assert.Equal(t, filepath.Join(dir, "a.en."+p.expected.Extension()), ref.Path)
		})
	}
}

func TestResolveMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.en.txt", "b.en.tok", "a.nl.xml")

	_, ok := Resolve(TestCase{ID: "a", Lang: "en", Dir: dir})
	assert.False(t, ok)
}

func TestResolveIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.en.tok.V"), 0o755))
	touch(t, dir, "a.en.xml")

	ref, ok := Resolve(TestCase{ID: "a", Lang: "en", Dir: dir})
	require.True(t, ok)
	assert.Equal(t, StructuredXML, ref.Kind)
}

func TestReferenceKindProperties(t *testing.T) {
	assert.Equal(t, []string{"-v"}, AlignedTokens.ModeFlags())
	assert.Nil(t, PlainTokens.ModeFlags())
	assert.Equal(t, []string{"-x", "test"}, StructuredXML.ModeFlags())

	assert.False(t, AlignedTokens.Structured())
	assert.False(t, PlainTokens.Structured())
	assert.True(t, StructuredXML.Structured())

	tc := TestCase{ID: "greet", Lang: "en"}
	assert.Equal(t, "greet.en.tok.V", Reference{Kind: AlignedTokens}.OutputName(tc))
	assert.Equal(t, "greet.en.tok", Reference{Kind: PlainTokens}.OutputName(tc))
	assert.Equal(t, "greet.en.xml", Reference{Kind: StructuredXML}.OutputName(tc))
}
