// Command ytpd downloads audio from video and playlist URLs.
//
// Invoked with a URL it downloads immediately using flag values and the
// configured defaults; invoked without one it collects the request through
// interactive prompts. Either way it makes sure yt-dlp and FFmpeg are present
// (offering to install them) before handing the request to yt-dlp.
//
// Subcommands:
//   - deps: report tool availability, optionally installing what is missing
//   - config init / config validate: manage the TOML configuration file
//
// Exit status is 0 on success, 130 when the operator cancels, and 1 for any
// other failure.
package main
