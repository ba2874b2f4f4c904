package main

import (
	"github.com/spf13/cobra"
)

type downloadFlags struct {
	format      string
	dest        string
	subdir      string
	thumbnail   bool
	noThumbnail bool
	playlist    bool
	single      bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logFormatFlag string
	var verboseFlag bool
	var quietFlag bool
	var flags downloadFlags

	ctx := newCommandContext(&configFlag, &logFormatFlag, &verboseFlag, &quietFlag)

	rootCmd := &cobra.Command{
		Use:   "ytpd [url]",
		Short: "Download audio from online videos and playlists",
		Long: "ytpd fetches audio with yt-dlp and converts it with ffmpeg.\n\n" +
			"With a URL argument it downloads immediately using configured defaults;\n" +
			"without one it asks for the URL, download type, destination, format and\n" +
			"thumbnail choice interactively.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format override (console or json)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Mirror debug logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress the spinner and status messages")

	rootCmd.Flags().StringVarP(&flags.format, "format", "f", "", "Audio format: mp3, wav, m4a, aac or flac")
	rootCmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "Destination directory (default: config download_dir or current directory)")
	rootCmd.Flags().StringVar(&flags.subdir, "subdir", "", "Subfolder of the destination to create and download into")
	rootCmd.Flags().BoolVar(&flags.thumbnail, "thumbnail", false, "Embed the video thumbnail as cover art")
	rootCmd.Flags().BoolVar(&flags.noThumbnail, "no-thumbnail", false, "Do not embed cover art")
	rootCmd.Flags().BoolVar(&flags.playlist, "playlist", false, "Download the whole playlist")
	rootCmd.Flags().BoolVar(&flags.single, "single", false, "Download only the single video")
	rootCmd.MarkFlagsMutuallyExclusive("thumbnail", "no-thumbnail")
	rootCmd.MarkFlagsMutuallyExclusive("playlist", "single")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
