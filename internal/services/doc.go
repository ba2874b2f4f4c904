// Package services defines shared utilities consumed by the workflow and the
// external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure kinds
//     (missing dependency, install failure, invalid input, external tool
//     failure, cancellation) classifiable after wrapping.
//   - Exit-code mapping so the CLI entrypoint never inspects error strings.
//   - Context helpers that stamp the invocation request id and mode for
//     logging.
package services
