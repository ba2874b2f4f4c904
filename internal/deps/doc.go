// Package deps probes the external executables ytpd shells out to.
//
// A Requirement names a command plus optional fallback directories and a
// verification invocation (ffmpeg -version). Prober resolves each one and
// reports a Status; lookup and execution are injectable for tests.
package deps
