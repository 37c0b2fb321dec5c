// Package suite runs the tokenizer regression suite: for every input file in the fixture
// directory it finds the reference, runs the tool, compares the result and records an outcome.
//
// Each case goes through these states, and ends in exactly one of the terminal ones:
//
//	Discovered -> Missing | Resolved
//	Resolved   -> Crashed | Compared
//	Compared   -> OK | OKWithLeaks | Failed
package suite
