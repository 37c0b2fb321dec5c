// Package leaks extracts the error count and the number of leaked bytes from the log written by a
// memory-checking wrapper such as valgrind.
package leaks

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	lostMarker    = "definitely lost"
	summaryMarker = "ERROR SUMMARY"

	lostToken    = "lost:"
	summaryToken = "SUMMARY:"
)

// Summary is what the instrumentation reported for one run. A count whose marker never appeared in
// the log is zero.
type Summary struct {
	Errors    int
	BytesLost int
}

// Clean returns true if no errors and no leaked bytes were reported.
func (s Summary) Clean() bool {
	return s.Errors == 0 && s.BytesLost == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("%d errors, %d bytes lost", s.Errors, s.BytesLost)
}

// Parse reads a diagnostic log. Only the lines carrying one of the two summary markers are
// considered. Within a line, the token after "lost:"
// is the leaked-byte count (thousands separators allowed) and the token after "SUMMARY:" is the
// error count. If a marker appears more than once, the last occurrence wins.
func Parse(r io.Reader) (Summary, error) {
	var ret Summary
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, lostMarker) && !strings.Contains(line, summaryMarker) {
			continue
		}
		if err := scanFields(strings.Fields(line), &ret); err != nil {
			return Summary{}, fmt.Errorf("malformed leak summary line %q: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, err
	}
	return ret, nil
}

// ParseFile is Parse for a log file on disk.
func ParseFile(path string) (Summary, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

func scanFields(fields []string, into *Summary) error {
	for i, field := range fields {
		if field != lostToken && field != summaryToken {
			continue
		}
		if i+1 >= len(fields) {
			return fmt.Errorf("no count after %q", field)
		}
		n, err := parseCount(fields[i+1])
		if err != nil {
			return err
		}
		if field == lostToken {
			into.BytesLost = n
		} else {
			into.Errors = n
		}
		return nil
	}
	return nil
}

func parseCount(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}
