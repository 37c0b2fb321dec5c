package harness

import (
	"strconv"
	"strings"
)

// Tool describes how to run the tool-under-test.
type Tool struct {
	// Binary is the path (or PATH-resolvable name) of the tokenizer executable.
	Binary string

	// Prefix is the optional instrumentation wrapper, such as "valgrind --leak-check=full". When
	// it is non-empty, every normal invocation is run through it.
	Prefix []string

	// ExtraArgs are passed to the tool before the mode flags on every invocation.
	ExtraArgs []string
}

// Invocation is a fully resolved command: an argument vector plus redirection targets. It is
// never passed through a shell.
type Invocation struct {
	Argv []string

	// Stdout is the file that receives the process's standard output; if empty, it is discarded.
	Stdout string

	// Stderr is the file that receives the process's standard error; if empty, it is discarded.
	Stderr string
}

// Instrumented returns true if invocations are wrapped by an instrumentation prefix.
func (t Tool) Instrumented() bool {
	return len(t.Prefix) != 0
}

// Invocation builds the normal run of the tool for one case:
//
//	[prefix...] binary [extra...] [modeFlags...] -L<lang> input output 2> logPath
func (t Tool) Invocation(modeFlags []string, lang, input, output, logPath string) Invocation {
	argv := make([]string, 0, len(t.Prefix)+len(t.ExtraArgs)+len(modeFlags)+4)
	argv = append(argv, t.Prefix...)
	argv = append(argv, t.toolArgs(modeFlags, lang, input, output)...)
	return Invocation{Argv: argv, Stderr: logPath}
}

// DebugInvocation builds the high-verbosity rerun used after a mismatch. It is never wrapped by
// the instrumentation prefix, since its only purpose is to produce a more detailed log.
func (t Tool) DebugInvocation(debugLevel int, modeFlags []string, lang, input, output, logPath string) Invocation {
	debugArgs := []string{"-d", strconv.Itoa(debugLevel)}
	argv := t.toolArgs(append(debugArgs, modeFlags...), lang, input, output)
	return Invocation{Argv: argv, Stderr: logPath}
}

func (t Tool) toolArgs(modeFlags []string, lang, input, output string) []string {
	args := []string{t.Binary}
	args = append(args, t.ExtraArgs...)
	args = append(args, modeFlags...)
	return append(args, "-L"+lang, input, output)
}

// ParsePrefix turns the instrumentation string from the environment into an argument vector. An
// empty or all-whitespace string means no instrumentation.
func ParsePrefix(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CommandLine renders the invocation the way a user would type it into a shell. This is only
// for display; the command is never executed from this string.
func (inv Invocation) CommandLine() string {
	parts := make([]string, 0, len(inv.Argv)+4)
	for _, a := range inv.Argv {
		parts = append(parts, shellQuote(a))
	}
	if inv.Stdout != "" {
		parts = append(parts, ">", shellQuote(inv.Stdout))
	}
	if inv.Stderr != "" {
		parts = append(parts, "2>", shellQuote(inv.Stderr))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./=:,+@%", r):
		return false
	}
	return true
}
