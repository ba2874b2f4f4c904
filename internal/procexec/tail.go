package procexec

import "sync"

// Tail keeps the most recent lines written to it. It is safe for use from
// the two scanner goroutines of a single Run.
type Tail struct {
	mu    sync.Mutex
	limit int
	lines []string
}

// NewTail returns a Tail holding at most limit lines.
func NewTail(limit int) *Tail {
	if limit <= 0 {
		limit = 1
	}
	return &Tail{limit: limit}
}

func (t *Tail) Add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if over := len(t.lines) - t.limit; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (t *Tail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}
