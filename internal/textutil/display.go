package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FitWidth collapses whitespace and truncates s to at most width terminal
// cells, appending an ellipsis when truncated. A non-positive width disables
// truncation.
func FitWidth(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
