// Package workflow composes one ytpd invocation.
//
// Runner drives the linear sequence collect request → preflight the
// destination → prepare yt-dlp/ffmpeg → download, tagging the context with a
// per-invocation request id so every log line of a run can be correlated.
// Each collaborator is an interface; the CLI wires the real implementations
// and tests substitute fakes.
package workflow
