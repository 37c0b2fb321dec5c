// Package harness runs the tool-under-test. It turns a test case's parameters into an argument
// vector with explicit redirection targets, executes it as a subprocess without going through a
// shell, and reports the exit status.
package harness
