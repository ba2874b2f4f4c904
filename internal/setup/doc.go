// Package setup prepares the external tools a download needs.
//
// Preparer probes yt-dlp and ffmpeg, then, when something is missing and the
// operator agrees (or tools.auto_install allows it), installs through the
// platform package manager: Homebrew on macOS, apt/dnf/pacman on Linux,
// winget on Windows. yt-dlp falls back to the official release binary, which
// is written atomically into the tool directory under a file lock. Each
// install is attempted once.
package setup
