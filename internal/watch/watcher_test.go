package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"aniclip/internal/logging"
)

func TestWatcherReportsWatchedFilesOnce(t *testing.T) {
	dir := t.TempDir()
	clips := filepath.Join(dir, "activeClipDB.txt")
	tagsFile := filepath.Join(dir, "activeTagList.txt")

	calls := make(chan []string, 4)
	w, err := New([]string{clips, tagsFile}, func(_ context.Context, changed []string) {
		calls <- changed
	}, Options{Debounce: 100 * time.Millisecond, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	for _, path := range []string{clips, tagsFile, filepath.Join(dir, "unrelated.txt"), clips} {
		if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	select {
	case got := <-calls:
		if diff := cmp.Diff([]string{clips, tagsFile}, got); diff != "" {
			t.Fatalf("unexpected changed files (-want +got):\n%s", diff)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler not called")
	}

	select {
	case extra := <-calls:
		t.Fatalf("unexpected second callback: %v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestTakeSettledWaitsForQuietPeriod(t *testing.T) {
	w := &Watcher{debounce: time.Second, pending: map[string]struct{}{"/b": {}, "/a": {}}}
	now := time.Now()
	w.lastEvent = now

	if got := w.takeSettled(now.Add(500 * time.Millisecond)); got != nil {
		t.Fatalf("expected nothing before the debounce window, got %v", got)
	}
	got := w.takeSettled(now.Add(2 * time.Second))
	if diff := cmp.Diff([]string{"/a", "/b"}, got); diff != "" {
		t.Fatalf("unexpected settled files (-want +got):\n%s", diff)
	}
	if len(w.pending) != 0 {
		t.Fatal("pending set not cleared")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(nil, func(context.Context, []string) {}, Options{}); err == nil {
		t.Fatal("expected error for empty file list")
	}
	if _, err := New([]string{filepath.Join(t.TempDir(), "a")}, nil, Options{}); err == nil {
		t.Fatal("expected error for nil handler")
	}
	if _, err := New([]string{filepath.Join(t.TempDir(), "missing", "a")}, func(context.Context, []string) {}, Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
