package spinner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTerminalDrawsMessageAndStops(t *testing.T) {
	var out syncBuffer
	s := NewTerminal(&out, WithInterval(5*time.Millisecond))

	s.Start("Downloading...")
	time.Sleep(30 * time.Millisecond)
	s.Update("Extracting audio: song.mp3")
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Downloading...") {
		t.Fatalf("expected initial message in output %q", got)
	}
	if !strings.Contains(got, "Extracting audio: song.mp3") {
		t.Fatalf("expected updated message in output %q", got)
	}

	after := len(out.String())
	time.Sleep(20 * time.Millisecond)
	if len(out.String()) != after {
		t.Fatal("spinner kept drawing after Stop")
	}
}

func TestTerminalUpdateBeforeStartIsIgnored(t *testing.T) {
	var out syncBuffer
	s := NewTerminal(&out)
	s.Update("ignored")
	s.Stop()
	if out.String() != "" {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestForOutputFallsBackToNop(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, ok := ForOutput(f, false).(Nop); !ok {
		t.Fatal("expected Nop for a regular file")
	}
	if _, ok := ForOutput(os.Stdout, true).(Nop); !ok {
		t.Fatal("expected Nop when quiet")
	}
	if _, ok := ForOutput(nil, false).(Nop); !ok {
		t.Fatal("expected Nop for nil file")
	}
}
