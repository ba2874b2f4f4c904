// Package spinner provides the liveness indicator shown while yt-dlp runs.
package spinner
