package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"ytpd/internal/config"
	"ytpd/internal/deps"
	"ytpd/internal/logging"
	"ytpd/internal/preflight"
	"ytpd/internal/procexec"
	"ytpd/internal/prompt"
	"ytpd/internal/services"
)

const (
	installerTailLines = 20

	choiceAutomatic = "Automatic installation (recommended)"
	choiceManual    = "Show manual installation instructions"
	choiceExit      = "Exit"
)

// Tools holds the resolved executables the download step runs.
type Tools struct {
	YtDlp  string
	FFmpeg string
}

// Options configures a Preparer. Zero values select host defaults, except
// Prompter: a nil Prompter means no operator is available to ask.
type Options struct {
	Config     *config.Config
	Platform   Platform
	Prober     deps.Prober
	Executor   procexec.Executor
	Prompter   prompt.Prompter
	HTTPClient *http.Client
	Out        io.Writer
	Logger     *slog.Logger
}

// Preparer makes sure yt-dlp and ffmpeg are usable, installing them when allowed.
type Preparer struct {
	cfg      *config.Config
	platform Platform
	prober   deps.Prober
	exec     procexec.Executor
	prompter prompt.Prompter
	release  ReleaseInstaller
	out      io.Writer
	logger   *slog.Logger
}

// New constructs a Preparer.
func New(opts Options) *Preparer {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	platform := opts.Platform
	if platform.OS == "" {
		platform = DetectPlatform()
	}
	executor := opts.Executor
	if executor == nil {
		executor = procexec.Command{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := logging.NewComponentLogger(opts.Logger, "setup")
	return &Preparer{
		cfg:      cfg,
		platform: platform,
		prober:   opts.Prober,
		exec:     executor,
		prompter: opts.Prompter,
		release: ReleaseInstaller{
			BaseURL: cfg.Tools.YtDlpReleaseURL,
			Client:  opts.HTTPClient,
			Logger:  opts.Logger,
		},
		out:    out,
		logger: logger,
	}
}

// Check reports the current availability of the required tools.
func (p *Preparer) Check(ctx context.Context) []deps.Status {
	return preflight.CheckSystemDeps(ctx, p.cfg, p.prober)
}

// Ensure returns resolved tool paths, installing missing tools when the
// operator (or tools.auto_install in non-interactive runs) allows it.
func (p *Preparer) Ensure(ctx context.Context) (Tools, error) {
	statuses := p.Check(ctx)
	missing := deps.Missing(statuses)
	if len(missing) == 0 {
		tools := toolsFrom(statuses)
		p.logger.Debug("required tools available",
			logging.String("ytdlp", tools.YtDlp),
			logging.String("ffmpeg", tools.FFmpeg),
		)
		return tools, nil
	}

	names := ToolNames(missing)
	for _, status := range missing {
		p.logger.Warn("required tool unavailable",
			logging.String("tool", status.Name),
			logging.String("detail", status.Detail),
		)
	}

	proceed, err := p.confirmInstall(names)
	if err != nil {
		return Tools{}, err
	}
	if !proceed {
		return Tools{}, services.Wrap(
			services.ErrMissingDependency,
			"setup",
			"ensure",
			"required tools missing: "+strings.Join(names, ", "),
			nil,
		)
	}
	return p.Install(ctx, names)
}

// Install installs each named tool once, then re-probes. No retries.
func (p *Preparer) Install(ctx context.Context, names []string) (Tools, error) {
	installed := make(map[string]string, len(names))
	for _, name := range names {
		path, err := p.installTool(ctx, name)
		if err != nil {
			return Tools{}, err
		}
		installed[name] = path
	}

	statuses := p.Check(ctx)
	tools := toolsFrom(statuses)
	if tools.YtDlp == "" {
		tools.YtDlp = installed[ToolYtDlp]
	}
	if tools.FFmpeg == "" {
		tools.FFmpeg = installed[ToolFFmpeg]
	}

	var still []string
	if tools.YtDlp == "" {
		still = append(still, ToolYtDlp)
	}
	if tools.FFmpeg == "" {
		still = append(still, ToolFFmpeg)
	}
	if len(still) > 0 {
		return Tools{}, services.Wrap(
			services.ErrInstallFailure,
			"setup",
			"verify",
			"installation finished but still unavailable: "+strings.Join(still, ", "),
			nil,
		)
	}
	fmt.Fprintln(p.out, "Dependencies installed.")
	p.logger.Info("required tools installed",
		logging.String("ytdlp", tools.YtDlp),
		logging.String("ffmpeg", tools.FFmpeg),
	)
	return tools, nil
}

func (p *Preparer) confirmInstall(names []string) (bool, error) {
	if p.prompter == nil {
		if p.cfg.Tools.AutoInstall {
			fmt.Fprintf(p.out, "Installing missing tools: %s\n", strings.Join(names, ", "))
			return true, nil
		}
		fmt.Fprint(p.out, ManualInstructions(p.platform, names))
		return false, nil
	}

	fmt.Fprintf(p.out, "Required tools are missing: %s\n", strings.Join(names, ", "))
	choices := []string{choiceAutomatic, choiceManual, choiceExit}
	idx, err := p.prompter.Select("How would you like to proceed?", choices, 0)
	if err != nil {
		return false, err
	}
	switch choices[idx] {
	case choiceAutomatic:
		return true, nil
	case choiceManual:
		fmt.Fprint(p.out, ManualInstructions(p.platform, names))
		return false, nil
	default:
		return false, nil
	}
}

func (p *Preparer) installTool(ctx context.Context, tool string) (string, error) {
	if mgr, ok := p.managerFor(tool); ok {
		return "", p.runManager(ctx, mgr, tool)
	}
	if tool == ToolYtDlp {
		fmt.Fprintln(p.out, "Downloading yt-dlp release binary...")
		path, err := p.release.Install(ctx, p.cfg.Paths.ToolDir, ReleaseAsset(p.platform), p.platform.OS == "windows")
		if err != nil {
			if ctx.Err() != nil {
				return "", services.Wrap(services.ErrCancelled, "setup", "install "+tool, "interrupted", ctx.Err())
			}
			return "", services.Wrap(services.ErrInstallFailure, "setup", "install "+tool, "release download failed", err)
		}
		return path, nil
	}

	fmt.Fprint(p.out, ManualInstructions(p.platform, []string{tool}))
	return "", services.Wrap(
		services.ErrMissingDependency,
		"setup",
		"install "+tool,
		fmt.Sprintf("no supported package manager found on %s", p.platform.OS),
		nil,
	)
}

func (p *Preparer) managerFor(tool string) (Manager, bool) {
	for _, mgr := range ManagersFor(p.platform.OS) {
		if !mgr.Provides(tool) {
			continue
		}
		if _, ok := p.prober.Find(mgr.Binary); ok {
			return mgr, true
		}
	}
	return Manager{}, false
}

func (p *Preparer) runManager(ctx context.Context, mgr Manager, tool string) error {
	binary, args := mgr.Command(tool, p.platform.Root)
	fmt.Fprintf(p.out, "Installing %s with %s...\n", tool, mgr.Name)
	p.logger.Info("installing tool",
		logging.String("tool", tool),
		logging.String("manager", mgr.Name),
		logging.String("command", binary+" "+strings.Join(args, " ")),
	)

	tail := procexec.NewTail(installerTailLines)
	err := p.exec.Run(ctx, binary, args, func(stream procexec.Stream, line string) {
		p.logger.Debug("installer output", logging.String("stream", stream.String()), logging.String("line", line))
		tail.Add(line)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return services.Wrap(services.ErrCancelled, "setup", "install "+tool, "interrupted", ctx.Err())
	}
	message := fmt.Sprintf("%s install failed", mgr.Name)
	if lines := tail.Lines(); len(lines) > 0 {
		message += ":\n" + strings.Join(lines, "\n")
	}
	return services.Wrap(services.ErrInstallFailure, "setup", "install "+tool, message, err)
}

func toolsFrom(statuses []deps.Status) Tools {
	var tools Tools
	for _, status := range statuses {
		if !status.Available {
			continue
		}
		switch toolName(status) {
		case ToolYtDlp:
			tools.YtDlp = status.Path
		case ToolFFmpeg:
			tools.FFmpeg = status.Path
		}
	}
	return tools
}

// ToolNames maps dependency statuses to the tool names Install accepts.
func ToolNames(statuses []deps.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, toolName(status))
	}
	return names
}

func toolName(status deps.Status) string {
	return strings.ToLower(status.Name)
}
