package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytpd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DownloadDir = filepath.Join(base, "music")
	cfgVal.Paths.ToolDir = filepath.Join(base, "tools")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Tools.AutoInstall = false
	cfgVal.Tools.YtDlpReleaseURL = "http://127.0.0.1:0/releases"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFormat overrides the default audio format on the test config.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Download.Format = format
	}
}

// WithAutoInstall toggles non-interactive installation of missing tools.
func WithAutoInstall(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.AutoInstall = enabled
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// points PATH at them alone, so host installs of the real tools stay hidden.
// If names is empty, yt-dlp and ffmpeg are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"yt-dlp", "ffmpeg"}
		}
		binDir := BinDir(b.baseDir)
		for _, name := range names {
			WriteScript(b.t, filepath.Join(binDir, name), "exit 0\n")
		}
		b.t.Setenv("PATH", binDir)
	}
}

// WithStubScript writes a stub executable whose body is script and points
// PATH at the stub directory.
func WithStubScript(name, script string) ConfigOption {
	return func(b *configBuilder) {
		binDir := BinDir(b.baseDir)
		WriteScript(b.t, filepath.Join(binDir, name), script)
		b.t.Setenv("PATH", binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// BinDir returns the stub executable directory under base.
func BinDir(base string) string {
	return filepath.Join(base, "bin")
}

// WriteConfig serializes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
