package prompt

import (
	"errors"

	"ytpd/internal/services"
)

// Prompter asks the operator for input. Implementations return an error
// wrapping services.ErrCancelled when the operator aborts.
type Prompter interface {
	// Input asks for free text. An empty answer yields def. validate may be nil.
	Input(label, def string, validate func(string) error) (string, error)
	// Select asks for one of items and returns its index.
	Select(label string, items []string, defaultIndex int) (int, error)
	// Confirm asks a yes/no question.
	Confirm(label string, def bool) (bool, error)
}

// ErrNoItems is returned by Select when called without choices.
var ErrNoItems = errors.New("no items to select from")

func cancelled(operation string, err error) error {
	return services.Wrap(services.ErrCancelled, "prompt", operation, "aborted by user", err)
}

func clampIndex(idx, n int) int {
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}
