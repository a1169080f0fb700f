// Package framework contains the low-level infrastructure shared by the autotest runner and
// the command-line driver: the Logger abstraction, leveled console logging, and capture of
// per-feature debug output. The process boundary to the binary under test lives in the
// harness subpackage, and the runner itself in autotest.
package framework
