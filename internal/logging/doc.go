// Package logging assembles the slog loggers used across ytpd.
//
// It owns the console and JSON handlers, resolves output destinations (log
// file, optional stderr mirror), and exposes component and context helpers so
// log lines carry the component name and the invocation request id. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
