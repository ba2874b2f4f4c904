package procexec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandStreamsBothPipes(t *testing.T) {
	script := writeScript(t, "echo out-$1\necho err-line >&2\nexit 0\n")

	var mu sync.Mutex
	var got []string
	err := Command{}.Run(context.Background(), script, []string{"a"}, func(stream Stream, line string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, stream.String()+":"+line)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	sort.Strings(got)
	want := []string{"stderr:err-line", "stdout:out-a"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected lines %v", got)
	}
}

func TestCommandReportsExitStatus(t *testing.T) {
	script := writeScript(t, "exit 3\n")
	err := Command{}.Run(context.Background(), script, nil, nil)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if code := ExitCode(err); code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}

func TestCommandCancelledContext(t *testing.T) {
	script := writeScript(t, "sleep 5\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Command{}.Run(ctx, script, nil, nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestCommandMissingBinary(t *testing.T) {
	err := Command{}.Run(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, nil)
	if err == nil {
		t.Fatal("expected start error")
	}
	if ExitCode(err) != -1 {
		t.Fatalf("expected -1 for start failure, got %d", ExitCode(err))
	}
	if errors.Is(err, context.Canceled) {
		t.Fatal("start failure should not look like cancellation")
	}
}

func TestCommandOverlongLineDoesNotBlockChild(t *testing.T) {
	script := writeScript(t, "head -c 2097152 /dev/zero | tr '\\000' x >&2\necho after\necho more >&2\nexit 1\n")

	var mu sync.Mutex
	var stdout []string
	done := make(chan error, 1)
	go func() {
		done <- Command{}.Run(context.Background(), script, nil, func(stream Stream, line string) {
			if stream == Stdout {
				mu.Lock()
				stdout = append(stdout, line)
				mu.Unlock()
			}
		})
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected scan error for overlong line")
		}
		if !strings.Contains(err.Error(), "scan output") {
			t.Fatalf("expected scan output error, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after an overlong stderr line")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(stdout) != 1 || stdout[0] != "after" {
		t.Fatalf("expected stdout to keep streaming, got %v", stdout)
	}
}

func TestTailKeepsMostRecentLines(t *testing.T) {
	tail := NewTail(2)
	for _, line := range []string{"a", "b", "c"} {
		tail.Add(line)
	}
	got := tail.Lines()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("unexpected tail %v", got)
	}
}
