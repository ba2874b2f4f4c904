package spinner

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"ytpd/internal/textutil"
)

const (
	defaultInterval = 100 * time.Millisecond
	defaultWidth    = 60
	spinnerStyle    = 14
)

// Indicator shows that work is in progress. It never affects the outcome.
type Indicator interface {
	Start(message string)
	Update(message string)
	Stop()
}

// Nop is an Indicator that draws nothing.
type Nop struct{}

func (Nop) Start(string)  {}
func (Nop) Update(string) {}
func (Nop) Stop()         {}

// ForOutput returns a Terminal spinner when f is a TTY and quiet is false,
// otherwise Nop.
func ForOutput(f *os.File, quiet bool) Indicator {
	if quiet || f == nil {
		return Nop{}
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return Nop{}
	}
	return NewTerminal(f)
}

// Terminal draws a spinner line redrawn by a ticker goroutine.
type Terminal struct {
	out      io.Writer
	interval time.Duration
	width    int

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithInterval sets the redraw period.
func WithInterval(d time.Duration) TerminalOption {
	return func(t *Terminal) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithWidth caps the message width in terminal cells.
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		if width > 0 {
			t.width = width
		}
	}
}

// NewTerminal constructs a spinner writing to out.
func NewTerminal(out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{out: out, interval: defaultInterval, width: defaultWidth}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins drawing. Calling Start on a running spinner only updates the message.
func (t *Terminal) Start(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		t.describe(message)
		return
	}

	t.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(t.out),
		progressbar.OptionSpinnerType(spinnerStyle),
		progressbar.OptionSetDescription(textutil.FitWidth(message, t.width)),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	_ = t.bar.RenderBlank()

	t.done = make(chan struct{})
	t.wg.Add(1)
	go t.spin(t.done)
}

func (t *Terminal) Update(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return
	}
	t.describe(message)
}

// Stop halts the ticker and clears the spinner line. It is safe to call more than once.
func (t *Terminal) Stop() {
	t.mu.Lock()
	if t.done == nil {
		t.mu.Unlock()
		return
	}
	close(t.done)
	t.done = nil
	t.mu.Unlock()

	t.wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar != nil {
		_ = t.bar.Finish()
		t.bar = nil
	}
}

func (t *Terminal) spin(done <-chan struct{}) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.bar != nil {
				_ = t.bar.Add(1)
			}
			t.mu.Unlock()
		}
	}
}

func (t *Terminal) describe(message string) {
	if t.bar != nil {
		t.bar.Describe(textutil.FitWidth(message, t.width))
	}
}
