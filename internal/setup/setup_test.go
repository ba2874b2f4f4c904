package setup

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"ytpd/internal/config"
	"ytpd/internal/deps"
	"ytpd/internal/procexec"
	"ytpd/internal/services"
)

type fakeHost struct {
	mu   sync.Mutex
	bins map[string]string
}

func newFakeHost(names ...string) *fakeHost {
	h := &fakeHost{bins: map[string]string{}}
	for _, name := range names {
		h.add(name)
	}
	return h
}

func (h *fakeHost) add(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bins[name] = "/usr/bin/" + name
}

func (h *fakeHost) lookPath(name string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if path, ok := h.bins[name]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

func (h *fakeHost) prober() deps.Prober {
	return deps.Prober{
		LookPath: h.lookPath,
		Verify:   func(context.Context, string, ...string) error { return nil },
	}
}

type call struct {
	binary string
	args   []string
}

type stubExecutor struct {
	calls  []call
	output []string
	err    error
	onCall func()
}

func (s *stubExecutor) Run(_ context.Context, binary string, args []string, onLine procexec.LineFunc) error {
	s.calls = append(s.calls, call{binary: binary, args: append([]string(nil), args...)})
	for _, line := range s.output {
		if onLine != nil {
			onLine(procexec.Stderr, line)
		}
	}
	if s.err != nil {
		return s.err
	}
	if s.onCall != nil {
		s.onCall()
	}
	return nil
}

type scriptedPrompter struct {
	selections []int
	labels     []string
}

func (p *scriptedPrompter) Input(string, string, func(string) error) (string, error) {
	return "", errors.New("unexpected input prompt")
}

func (p *scriptedPrompter) Select(label string, _ []string, _ int) (int, error) {
	p.labels = append(p.labels, label)
	if len(p.selections) == 0 {
		return 0, errors.New("unexpected select prompt")
	}
	idx := p.selections[0]
	p.selections = p.selections[1:]
	return idx, nil
}

func (p *scriptedPrompter) Confirm(string, bool) (bool, error) {
	return false, errors.New("unexpected confirm prompt")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ToolDir = filepath.Join(t.TempDir(), "bin")
	cfg.Tools.AutoInstall = true
	return &cfg
}

var linuxUser = Platform{OS: "linux", Arch: "amd64", Distro: "ubuntu", DistroLike: []string{"debian"}}

func TestEnsureReturnsResolvedToolsWhenPresent(t *testing.T) {
	host := newFakeHost("yt-dlp", "ffmpeg")
	executor := &stubExecutor{}
	p := New(Options{Config: testConfig(t), Platform: linuxUser, Prober: host.prober(), Executor: executor})

	tools, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if tools.YtDlp != "/usr/bin/yt-dlp" || tools.FFmpeg != "/usr/bin/ffmpeg" {
		t.Fatalf("unexpected tools %#v", tools)
	}
	if len(executor.calls) != 0 {
		t.Fatalf("expected no installer calls, got %v", executor.calls)
	}
}

func TestEnsureInstallsFFmpegWithAptViaSudo(t *testing.T) {
	host := newFakeHost("yt-dlp", "apt", "sudo")
	executor := &stubExecutor{onCall: func() { host.add("ffmpeg") }}
	var out bytes.Buffer
	p := New(Options{Config: testConfig(t), Platform: linuxUser, Prober: host.prober(), Executor: executor, Out: &out})

	tools, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if tools.FFmpeg != "/usr/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg path %q", tools.FFmpeg)
	}
	if len(executor.calls) != 1 {
		t.Fatalf("expected one installer call, got %d", len(executor.calls))
	}
	got := executor.calls[0]
	want := []string{"apt", "install", "-y", "ffmpeg"}
	if got.binary != "sudo" || strings.Join(got.args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected install command %s %v", got.binary, got.args)
	}
	if !strings.Contains(out.String(), "Installing ffmpeg with apt") {
		t.Fatalf("expected progress message, got %q", out.String())
	}
}

func TestEnsureDownloadsYtDlpReleaseWhenNoManagerPackagesIt(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics")
	}
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte("#!/bin/sh\nexit 0\n"))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Tools.YtDlpReleaseURL = srv.URL + "/releases/latest/download"
	host := newFakeHost("ffmpeg", "apt")
	executor := &stubExecutor{}
	p := New(Options{Config: cfg, Platform: linuxUser, Prober: host.prober(), Executor: executor, HTTPClient: srv.Client()})

	tools, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if requested != "/releases/latest/download/yt-dlp_linux" {
		t.Fatalf("unexpected asset path %q", requested)
	}
	want := filepath.Join(cfg.Paths.ToolDir, "yt-dlp")
	if tools.YtDlp != want {
		t.Fatalf("expected yt-dlp at %q, got %q", want, tools.YtDlp)
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat installed binary: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable permissions, got %o", info.Mode().Perm())
	}
	if len(executor.calls) != 0 {
		t.Fatalf("apt does not package yt-dlp; got calls %v", executor.calls)
	}
}

func TestEnsureReleaseDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Tools.YtDlpReleaseURL = srv.URL
	host := newFakeHost("ffmpeg")
	p := New(Options{Config: cfg, Platform: linuxUser, Prober: host.prober(), Executor: &stubExecutor{}, HTTPClient: srv.Client()})

	_, err := p.Ensure(context.Background())
	if !errors.Is(err, services.ErrInstallFailure) {
		t.Fatalf("expected install failure, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.Paths.ToolDir, "yt-dlp")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no binary after failed download, stat err %v", statErr)
	}
}

func TestEnsureWithoutAutoInstallPrintsInstructions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tools.AutoInstall = false
	host := newFakeHost("yt-dlp", "apt")
	executor := &stubExecutor{}
	var out bytes.Buffer
	p := New(Options{Config: cfg, Platform: linuxUser, Prober: host.prober(), Executor: executor, Out: &out})

	_, err := p.Ensure(context.Background())
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	if !strings.Contains(out.String(), "sudo apt update && sudo apt install -y ffmpeg") {
		t.Fatalf("expected Debian instructions, got %q", out.String())
	}
	if len(executor.calls) != 0 {
		t.Fatalf("expected no install attempts, got %v", executor.calls)
	}
}

func TestEnsureInteractiveMenu(t *testing.T) {
	tests := []struct {
		name      string
		choice    int
		wantErr   error
		wantCalls int
		wantText  string
	}{
		{name: "automatic", choice: 0, wantCalls: 1},
		{name: "manual", choice: 1, wantErr: services.ErrMissingDependency, wantText: "Debian/Ubuntu"},
		{name: "exit", choice: 2, wantErr: services.ErrMissingDependency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Tools.AutoInstall = false
			host := newFakeHost("yt-dlp", "apt")
			executor := &stubExecutor{onCall: func() { host.add("ffmpeg") }}
			prompter := &scriptedPrompter{selections: []int{tt.choice}}
			var out bytes.Buffer
			p := New(Options{Config: cfg, Platform: linuxUser, Prober: host.prober(), Executor: executor, Prompter: prompter, Out: &out})

			_, err := p.Ensure(context.Background())
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(executor.calls) != tt.wantCalls {
				t.Fatalf("expected %d installer calls, got %d", tt.wantCalls, len(executor.calls))
			}
			if tt.wantText != "" && !strings.Contains(out.String(), tt.wantText) {
				t.Fatalf("expected %q in output %q", tt.wantText, out.String())
			}
			if len(prompter.labels) != 1 {
				t.Fatalf("expected exactly one menu prompt, got %v", prompter.labels)
			}
		})
	}
}

func TestEnsureInstallerFailureCarriesOutput(t *testing.T) {
	host := newFakeHost("yt-dlp", "dnf")
	executor := &stubExecutor{output: []string{"Error: Unable to find a match: ffmpeg"}, err: errors.New("exit status 1")}
	root := Platform{OS: "linux", Arch: "amd64", Distro: "fedora", Root: true}
	p := New(Options{Config: testConfig(t), Platform: root, Prober: host.prober(), Executor: executor})

	_, err := p.Ensure(context.Background())
	if !errors.Is(err, services.ErrInstallFailure) {
		t.Fatalf("expected install failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unable to find a match") {
		t.Fatalf("expected installer output in error, got %v", err)
	}
	if executor.calls[0].binary != "dnf" {
		t.Fatalf("root should not use sudo, got %q", executor.calls[0].binary)
	}
}

func TestEnsureUnknownPlatformFails(t *testing.T) {
	host := newFakeHost("yt-dlp")
	var out bytes.Buffer
	p := New(Options{Config: testConfig(t), Platform: Platform{OS: "plan9"}, Prober: host.prober(), Executor: &stubExecutor{}, Out: &out})

	_, err := p.Ensure(context.Background())
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	if !strings.Contains(out.String(), "ffmpeg.org/download") {
		t.Fatalf("expected generic instructions, got %q", out.String())
	}
}

func TestManagerCommands(t *testing.T) {
	tests := []struct {
		goos   string
		tool   string
		root   bool
		binary string
		args   string
	}{
		{"darwin", ToolFFmpeg, false, "brew", "install ffmpeg"},
		{"darwin", ToolYtDlp, false, "brew", "install yt-dlp"},
		{"linux", ToolFFmpeg, false, "sudo", "apt install -y ffmpeg"},
		{"linux", ToolFFmpeg, true, "apt", "install -y ffmpeg"},
		{"windows", ToolFFmpeg, false, "winget", "install -e --id Gyan.FFmpeg"},
	}
	for _, tt := range tests {
		mgr := ManagersFor(tt.goos)[0]
		binary, args := mgr.Command(tt.tool, tt.root)
		if binary != tt.binary || strings.Join(args, " ") != tt.args {
			t.Fatalf("%s/%s: got %s %v", tt.goos, tt.tool, binary, args)
		}
	}
	if ManagersFor("plan9") != nil {
		t.Fatal("expected no managers for unknown platform")
	}
}

func TestLinuxManagerOrder(t *testing.T) {
	var names []string
	for _, mgr := range ManagersFor("linux") {
		names = append(names, mgr.Name)
	}
	if strings.Join(names, ",") != "apt,dnf,pacman" {
		t.Fatalf("unexpected order %v", names)
	}
}

func TestPlatformFamilyAndReleaseAsset(t *testing.T) {
	if got := (Platform{OS: "linux", Distro: "pop", DistroLike: []string{"ubuntu", "debian"}}).Family(); got != "debian" {
		t.Fatalf("expected debian family, got %q", got)
	}
	if got := (Platform{OS: "linux", Distro: "gentoo"}).Family(); got != "" {
		t.Fatalf("expected unknown family, got %q", got)
	}
	cases := []struct {
		p    Platform
		want string
	}{
		{Platform{OS: "windows", Arch: "amd64"}, "yt-dlp.exe"},
		{Platform{OS: "darwin", Arch: "arm64"}, "yt-dlp_macos"},
		{Platform{OS: "linux", Arch: "arm64"}, "yt-dlp_linux_aarch64"},
		{Platform{OS: "linux", Arch: "riscv64"}, "yt-dlp"},
	}
	for _, c := range cases {
		if got := ReleaseAsset(c.p); got != c.want {
			t.Fatalf("ReleaseAsset(%+v) = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestReadOSRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	content := "NAME=\"Linux Mint\"\nID=linuxmint\nID_LIKE=\"ubuntu debian\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	id, like := readOSRelease(path)
	if id != "linuxmint" || len(like) != 2 || like[1] != "debian" {
		t.Fatalf("unexpected parse %q %v", id, like)
	}
}
