package workflow

import (
	"context"
	"log/slog"

	"ytpd/internal/logging"
	"ytpd/internal/preflight"
)

// DestinationPreflight returns a PreflightFunc checking the destination and
// the tool directory, logging each result.
func DestinationPreflight(toolDir string, logger *slog.Logger) PreflightFunc {
	logger = logging.NewComponentLogger(logger, "preflight")
	return func(ctx context.Context, destination string) error {
		results := preflight.RunAll(ctx, destination, toolDir)
		log := logging.WithContext(ctx, logger)
		for _, r := range results {
			if r.Passed {
				log.Debug("preflight check passed",
					logging.String("check", r.Name),
					logging.String("detail", r.Detail),
				)
				continue
			}
			log.Error("preflight check failed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
			)
		}
		return preflight.Err(results)
	}
}
