// Package request models the Download Request: the handful of choices a user
// makes for one invocation (source URL, destination directory, audio format,
// thumbnail embedding, playlist mode).
//
// The package also owns the audio format enumeration and the destination
// resolution rules. Filesystem access goes through the FS interface so the
// resolution logic is testable without touching the real working directory.
package request
