package compare

import (
	"bytes"
	"regexp"
)

// Rule is one normalization step applied to each line of a structured document. A rule either
// rewrites the parts of a line that match Pattern, or, if DeleteLine is set, drops every line
// that matches.
type Rule struct {
	Name       string
	Pattern    *regexp.Regexp
	Replace    string
	DeleteLine bool
}

// Apply applies the rule to a single line, without its line terminator. The second return value
// is false if the line should be dropped.
func (r Rule) Apply(line []byte) ([]byte, bool) {
	if !r.Pattern.Match(line) {
		return line, true
	}
	if r.DeleteLine {
		return nil, false
	}
	return r.Pattern.ReplaceAll(line, []byte(r.Replace)), true
}

// blankAttribute empties the value of every attribute whose whole name matches namePattern.
func blankAttribute(name, namePattern string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`\b(` + namePattern + `)="[^"]*"`),
		Replace: `${1}=""`,
	}
}

func deleteLinesContaining(name, literal string) Rule {
	return Rule{
		Name:       name,
		Pattern:    regexp.MustCompile(regexp.QuoteMeta(literal)),
		DeleteLine: true,
	}
}

// XMLRules erase the parts of an XML annotation document that change from run to run without
// meaning anything: who generated it, with which version, and when. The datetime rule also
// covers begindatetime and enddatetime on provenance processors.
var XMLRules = []Rule{ //nolint:gochecknoglobals
	blankAttribute("generator", "generator"),
	blankAttribute("version", "version"),
	blankAttribute("datetime", `[A-Za-z:]*datetime`),
	deleteLinesContaining("token-annotation", "<token-annotation"),
	deleteLinesContaining("libfolia", "libfolia"),
}

// Normalize applies rules, in order, to every line of data. Normalizing already normalized data
// does not change it.
func Normalize(data []byte, rules []Rule) []byte {
	if len(rules) == 0 {
		return data
	}
	var out bytes.Buffer
	out.Grow(len(data))
	for _, line := range splitLines(data) {
		keep := true
		for _, r := range rules {
			if line, keep = r.Apply(line); !keep {
				break
			}
		}
		if keep {
			out.Write(line)
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

// splitLines splits data on '\n'. A trailing newline does not produce an extra empty line.
func splitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	lines := bytes.Split(data, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
