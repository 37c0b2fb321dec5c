package fixtures

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const inputExtension = "txt"

// ErrMalformedFileName is returned by ParseFileName for a name that is not of the form
// <id>.<lang>.txt.
var ErrMalformedFileName = errors.New("not a test input file name")

// TestCase is the identity of one test, taken from its input file name.
type TestCase struct {
	// ID is an arbitrary label for the test.
	ID string

	// Lang selects the tokenizer configuration, and is passed to the tool as -L<lang>.
	Lang string

	// Dir is the directory the input file was found in. Reference files are looked up next to it.
	Dir string
}

// ParseFileName parses the base name of an input file. The grammar is
//
//	name = id "." lang ".txt"
//
// where id and lang contain no dots. Empty id or lang fields are accepted. Any directory part
// of name is ignored and Dir is left empty; Discover fills it in.
func ParseFileName(name string) (TestCase, error) {
	fields := strings.Split(filepath.Base(name), ".")
	if len(fields) != 3 || fields[2] != inputExtension {
		return TestCase{}, fmt.Errorf("%q: %w", name, ErrMalformedFileName)
	}
	return TestCase{ID: fields[0], Lang: fields[1]}, nil
}

// Stem is the common prefix of every file belonging to this case: <id>.<lang>.
func (tc TestCase) Stem() string {
	return tc.ID + "." + tc.Lang
}

// InputFile is the base name of the case's input file.
func (tc TestCase) InputFile() string {
	return tc.Stem() + "." + inputExtension
}

// InputPath is the path of the case's input file.
func (tc TestCase) InputPath() string {
	return filepath.Join(tc.Dir, tc.InputFile())
}

func (tc TestCase) String() string {
	return fmt.Sprintf("%s (%s)", tc.ID, tc.Lang)
}
