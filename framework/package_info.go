// Package framework contains the low-level pieces of the tokenizer regression harness that do not
// know anything about fixture naming or output formats. The base package contains shared types
// such as Logger; other components are in the subpackages harness and regtest.
//
// The general model is:
//
// 1. The harness runs an external tool-under-test once per test case, as a subprocess whose
// standard error is captured to a file (package harness).
//
// 2. Each case ends in exactly one Outcome, and the outcomes of a run are accumulated in a
// Results value that also determines the process exit code (package regtest).
//
// 3. Progress and results are reported through TestLogger implementations: a colorized console
// logger, a JUnit XML writer, or both.
//
// The domain-specific code that knows what a fixture looks like and how output is compared lives
// in the fixtures, compare, leaks and suite packages.
package framework
