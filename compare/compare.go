package compare

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	referenceNormSuffix = ".ref.norm"
	outputNormSuffix    = ".out.norm"
)

// Request describes one comparison of produced output against a reference file.
type Request struct {
	ReferencePath string
	OutputPath    string

	// DiffPath is where a unified diff is written if the files differ. An existing file at this
	// path is removed if they match.
	DiffPath string

	// Rules, if any, are applied to both files before comparing them. The normalized copies are
	// written to NormalizedDir (or next to the output file if it is empty) so that they can be
	// inspected.
	Rules         []Rule
	NormalizedDir string
}

// Verdict is the result of a comparison.
type Verdict struct {
	Match    bool
	DiffPath string
}

// Compare reads both files, normalizes them if the request has rules, and compares them line by
// line ignoring whitespace.
func Compare(req Request) (Verdict, error) {
	reference, err := os.ReadFile(req.ReferencePath)
	if err != nil {
		return Verdict{}, fmt.Errorf("cannot read reference: %w", err)
	}
	output, err := os.ReadFile(req.OutputPath)
	if err != nil {
		return Verdict{}, fmt.Errorf("cannot read output: %w", err)
	}
	// The diff header names the files whose text it shows.
	referenceName, outputName := req.ReferencePath, req.OutputPath
	if len(req.Rules) != 0 {
		if reference, referenceName, err = writeNormalized(req, reference, referenceNormSuffix); err != nil {
			return Verdict{}, err
		}
		if output, outputName, err = writeNormalized(req, output, outputNormSuffix); err != nil {
			return Verdict{}, err
		}
	}

	if EqualIgnoringWhitespace(reference, output) {
		if req.DiffPath != "" {
			if err := os.Remove(req.DiffPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return Verdict{}, fmt.Errorf("cannot remove stale diff: %w", err)
			}
		}
		return Verdict{Match: true}, nil
	}

	if req.DiffPath == "" {
		return Verdict{}, nil
	}
	diff, err := UnifiedDiff(referenceName, outputName, reference, output)
	if err != nil {
		return Verdict{}, err
	}
	if err := os.WriteFile(req.DiffPath, []byte(diff), 0o644); err != nil { //nolint:gosec
		return Verdict{}, fmt.Errorf("cannot write diff: %w", err)
	}
	return Verdict{DiffPath: req.DiffPath}, nil
}

// writeNormalized applies the request's rules to data and saves the result. It returns the
// normalized data and the path it was saved to.
func writeNormalized(req Request, data []byte, suffix string) ([]byte, string, error) {
	dir := req.NormalizedDir
	if dir == "" {
		dir = filepath.Dir(req.OutputPath)
	}
	name := strings.TrimSuffix(filepath.Base(req.OutputPath), filepath.Ext(req.OutputPath))
	path := filepath.Join(dir, name+suffix)
	normalized := Normalize(data, req.Rules)
	if err := os.WriteFile(path, normalized, 0o644); err != nil { //nolint:gosec
		return nil, "", fmt.Errorf("cannot write normalized copy: %w", err)
	}
	return normalized, path, nil
}

// EqualIgnoringWhitespace compares a and b line by line, disregarding all whitespace within each
// line. The number of lines must still be the same.
func EqualIgnoringWhitespace(a, b []byte) bool {
	linesA, linesB := splitLines(a), splitLines(b)
	if len(linesA) != len(linesB) {
		return false
	}
	for i := range linesA {
		if !bytes.Equal(stripSpace(linesA[i]), stripSpace(linesB[i])) {
			return false
		}
	}
	return true
}

func stripSpace(line []byte) []byte {
	if bytes.IndexFunc(line, unicode.IsSpace) < 0 {
		return line
	}
	return bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
}

// UnifiedDiff renders the difference between reference and output in unified diff format.
func UnifiedDiff(referenceName, outputName string, reference, output []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(reference)),
		B:        difflib.SplitLines(string(output)),
		FromFile: referenceName,
		ToFile:   outputName,
		Context:  3,
	})
}
