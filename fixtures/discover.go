package fixtures

import (
	"path/filepath"

	"github.com/tokharness/tok-test-harness/framework"
)

// DefaultPattern selects every input file in the fixture directory.
const DefaultPattern = "*.txt"

// Discover finds the test cases whose input files match the glob pattern. A relative pattern is
// taken relative to dir and may have directory parts of its own; an absolute pattern is used as
// it is. Each case's Dir is the directory its input file was found in. Cases are returned in the
// order the glob produced them. Matching names that are not valid input file names are skipped;
// they are only reported to the logger.
func Discover(dir, pattern string, logger framework.Logger) ([]TestCase, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(dir, pattern)
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	ret := make([]TestCase, 0, len(matches))
	for _, path := range matches {
		tc, err := ParseFileName(path)
		if err != nil {
			logger.Printf("Skipping %s", err)
			continue
		}
		tc.Dir = filepath.Dir(path)
		ret = append(ret, tc)
	}
	return ret, nil
}
