package setup

// Tool names as the package managers and release assets know them.
const (
	ToolYtDlp  = "yt-dlp"
	ToolFFmpeg = "ffmpeg"
)

// Manager describes a platform package manager ytpd knows how to drive.
type Manager struct {
	Name   string
	Binary string
	// Args precede the package name.
	Args []string
	// NeedsRoot prefixes the command with sudo for non-root users.
	NeedsRoot bool
	// Packages maps a tool to the package name; tools absent here are not
	// installed through this manager.
	Packages map[string]string
}

// Provides reports whether the manager can install tool.
func (m Manager) Provides(tool string) bool {
	_, ok := m.Packages[tool]
	return ok
}

// Command returns the binary and arguments that install tool.
func (m Manager) Command(tool string, root bool) (string, []string) {
	args := append(append([]string(nil), m.Args...), m.Packages[tool])
	if m.NeedsRoot && !root {
		return "sudo", append([]string{m.Binary}, args...)
	}
	return m.Binary, args
}

// ManagersFor returns the package managers probed on goos, in order.
func ManagersFor(goos string) []Manager {
	switch goos {
	case "darwin":
		return []Manager{
			{Name: "Homebrew", Binary: "brew", Args: []string{"install"}, Packages: map[string]string{ToolFFmpeg: "ffmpeg", ToolYtDlp: "yt-dlp"}},
		}
	case "linux":
		return []Manager{
			{Name: "apt", Binary: "apt", Args: []string{"install", "-y"}, NeedsRoot: true, Packages: map[string]string{ToolFFmpeg: "ffmpeg"}},
			{Name: "dnf", Binary: "dnf", Args: []string{"install", "-y"}, NeedsRoot: true, Packages: map[string]string{ToolFFmpeg: "ffmpeg"}},
			{Name: "pacman", Binary: "pacman", Args: []string{"-S", "--noconfirm"}, NeedsRoot: true, Packages: map[string]string{ToolFFmpeg: "ffmpeg", ToolYtDlp: "yt-dlp"}},
		}
	case "windows":
		return []Manager{
			{Name: "winget", Binary: "winget", Args: []string{"install", "-e", "--id"}, Packages: map[string]string{ToolFFmpeg: "Gyan.FFmpeg", ToolYtDlp: "yt-dlp.yt-dlp"}},
		}
	default:
		return nil
	}
}
