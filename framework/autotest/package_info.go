// Package autotest runs end-to-end tests against an external binary that takes its work as
// command-line triples of the form "<command> <inputFile> <outputFile>".
//
// A Feature is one named test case made of ordered Scenarios. The Runner launches the binary
// once per Feature with every Scenario's triple, then checks that each output file it wrote is
// byte-for-byte identical to a recorded expected file. RunSuite executes a list of Features in
// order and stops at the first one that fails.
//
// The binary's exit status is not part of the pass/fail decision; only the files it produces are.
package autotest
