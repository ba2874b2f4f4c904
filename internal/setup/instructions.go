package setup

import (
	"fmt"
	"strings"
)

// ManualInstructions returns operator-facing install steps for the missing tools.
func ManualInstructions(p Platform, missing []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Missing: %s\n\n", strings.Join(missing, ", "))

	switch p.OS {
	case "darwin":
		b.WriteString("Install with Homebrew (https://brew.sh):\n")
		b.WriteString("  brew install ffmpeg yt-dlp\n")
	case "linux":
		switch p.Family() {
		case "debian":
			b.WriteString("Debian/Ubuntu:\n")
			b.WriteString("  sudo apt update && sudo apt install -y ffmpeg\n")
		case "fedora":
			b.WriteString("Fedora (enable RPM Fusion for full codec support):\n")
			b.WriteString("  sudo dnf install -y ffmpeg\n")
		case "arch":
			b.WriteString("Arch Linux:\n")
			b.WriteString("  sudo pacman -S --noconfirm ffmpeg yt-dlp\n")
		default:
			b.WriteString("Install ffmpeg with your distribution's package manager:\n")
			b.WriteString("  Debian/Ubuntu: sudo apt install -y ffmpeg\n")
			b.WriteString("  Fedora:        sudo dnf install -y ffmpeg\n")
			b.WriteString("  Arch:          sudo pacman -S --noconfirm ffmpeg\n")
		}
	case "windows":
		b.WriteString("Install with winget:\n")
		b.WriteString("  winget install -e --id Gyan.FFmpeg\n")
		b.WriteString("  winget install -e --id yt-dlp.yt-dlp\n")
	default:
		b.WriteString("ffmpeg: https://ffmpeg.org/download.html\n")
	}
	b.WriteString("\nyt-dlp standalone binaries: https://github.com/yt-dlp/yt-dlp/releases/latest\n")
	return b.String()
}
