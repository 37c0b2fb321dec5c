// Package regtest contains the result model of a regression run: the Outcome of each case, the
// Results of the whole run (including the exit code derived from them), and the TestLogger
// implementations that report progress on the console and in JUnit XML.
package regtest
