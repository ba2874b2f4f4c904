// Package procexec runs external tools and streams their output line by line.
//
// Callers depend on the Executor interface so tests can substitute a stub
// that records arguments and replays canned output.
package procexec
