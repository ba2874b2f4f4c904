package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ytpd/internal/services"
	"ytpd/internal/ytdlp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(os.Stderr, err)
	}
	stop()
	os.Exit(services.ExitCode(err))
}

// reportError prints a one-line summary (plus captured tool output) without stack traces.
func reportError(w io.Writer, err error) {
	var toolErr *ytdlp.ExitError
	switch {
	case err == nil:
		return
	case services.IsCancelled(err):
		fmt.Fprintln(w, "Cancelled.")
	case errors.As(err, &toolErr):
		fmt.Fprintf(w, "Download failed: %s\n", toolErr.Summary())
		for _, line := range toolErr.Lines {
			fmt.Fprintln(w, line)
		}
	case errors.Is(err, services.ErrExternalTool):
		fmt.Fprintf(w, "Download failed: %v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
