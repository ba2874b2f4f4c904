package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ytpd/internal/config"
	"ytpd/internal/logging"
	"ytpd/internal/prompt"
	"ytpd/internal/spinner"
)

type commandContext struct {
	configFlag    *string
	logFormatFlag *string
	verboseFlag   *bool
	quietFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logFormatFlag *string, verboseFlag, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logFormatFlag: logFormatFlag,
		verboseFlag:   verboseFlag,
		quietFlag:     quietFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if format := c.logFormat(); format != "" {
			if format != "console" && format != "json" {
				c.configErr = fmt.Errorf("--log-format: unsupported value %q (console or json)", format)
				return
			}
			cfg.Logging.Format = format
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.verbose())
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) logFormat() string {
	if c.logFormatFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) quiet() bool {
	return c.quietFlag != nil && *c.quietFlag
}

// statusWriter receives operator-facing progress notes; --quiet drops them.
func (c *commandContext) statusWriter(cmd *cobra.Command) io.Writer {
	if c.quiet() {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// prompter picks arrow-key menus on a terminal and numbered menus otherwise.
func (c *commandContext) prompter(cmd *cobra.Command) prompt.Prompter {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin && isTerminal(f) {
		if out, ok := cmd.OutOrStdout().(*os.File); ok && out == os.Stdout && isTerminal(out) {
			return prompt.NewTerminal()
		}
	}
	return prompt.NewLine(in, cmd.OutOrStdout())
}

func (c *commandContext) indicator(cmd *cobra.Command) spinner.Indicator {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return spinner.ForOutput(f, c.quiet())
	}
	return spinner.Nop{}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
