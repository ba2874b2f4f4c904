// Package textutil provides small text helpers shared by the request and
// terminal layers: filename sanitization for user-chosen subfolders and
// width-aware truncation for single-line status output.
package textutil
