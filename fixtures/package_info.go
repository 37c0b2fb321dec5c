// Package fixtures knows the file naming convention of the test suite. An input file named
// <id>.<lang>.txt defines a test case, and exactly one of <id>.<lang>.tok.V, <id>.<lang>.tok or
// <id>.<lang>.xml next to it is the expected output.
package fixtures
