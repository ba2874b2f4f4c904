package config

const (
	defaultConfigPath             = "~/.config/ytpd/config.toml"
	defaultDownloadDir            = ""
	defaultToolDir                = "~/.local/share/ytpd/bin"
	defaultLogDir                 = "~/.local/state/ytpd"
	defaultFormat                 = "mp3"
	defaultEmbedThumbnail         = true
	defaultAudioQuality           = "0"
	defaultOutputTemplate         = "%(title)s.%(ext)s"
	defaultPlaylistOutputTemplate = "%(playlist_index)03d - %(title)s.%(ext)s"
	defaultAutoInstall            = true
	defaultYtDlpReleaseURL        = "https://github.com/yt-dlp/yt-dlp/releases/latest/download"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			ToolDir:     defaultToolDir,
			LogDir:      defaultLogDir,
		},
		Download: Download{
			Format:                 defaultFormat,
			EmbedThumbnail:         defaultEmbedThumbnail,
			AudioQuality:           defaultAudioQuality,
			OutputTemplate:         defaultOutputTemplate,
			PlaylistOutputTemplate: defaultPlaylistOutputTemplate,
		},
		Tools: Tools{
			AutoInstall:     defaultAutoInstall,
			YtDlpReleaseURL: defaultYtDlpReleaseURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
