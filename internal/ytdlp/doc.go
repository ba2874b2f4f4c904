// Package ytdlp drives the yt-dlp command line tool.
//
// BuildArgs maps a request.Request onto yt-dlp flags: audio extraction and
// format, output directory and template, thumbnail/metadata embedding and
// playlist handling. Client runs the tool through a procexec.Executor,
// parses its --newline progress output into Progress snapshots, and keeps
// the tail of its error output for the failure message. Transcoding and
// artwork embedding happen inside yt-dlp's own ffmpeg post-processing.
package ytdlp
