package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gopkg.in/fsnotify.v1"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingHandler struct {
	mu    sync.Mutex
	calls [][]string
	err   error
	done  chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{done: make(chan struct{}, 16)}
}

func (h *recordingHandler) handle(_ context.Context, changed []string) error {
	h.mu.Lock()
	h.calls = append(h.calls, changed)
	h.mu.Unlock()
	select {
	case h.done <- struct{}{}:
	default:
	}
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

func (h *recordingHandler) wait(t *testing.T) {
	t.Helper()
	select {
	case <-h.done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestNew_RequiresInputs(t *testing.T) {
	handler := newRecordingHandler()

	if _, err := New(nil, handler.handle); !errors.Is(err, ErrNoInputs) {
		t.Errorf("Expected ErrNoInputs, got %v", err)
	}
	if _, err := New([]string{"", ""}, handler.handle); !errors.Is(err, ErrNoInputs) {
		t.Errorf("Expected ErrNoInputs for empty paths, got %v", err)
	}
	if _, err := New([]string{"translations.csv"}, nil); err == nil {
		t.Error("Expected error for nil handler")
	}
}

func TestNew_WatchesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	translations := filepath.Join(dir, "translations.csv")
	translators := filepath.Join(dir, "translators.csv")

	w, err := New([]string{translators, translations, translations}, newRecordingHandler().handle)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(w.dirs) != 1 || w.dirs[0] != dir {
		t.Errorf("Expected one watched directory %s, got %v", dir, w.dirs)
	}
	files := w.Files()
	if len(files) != 2 || files[0] != translations || files[1] != translators {
		t.Errorf("Unexpected files: %v", files)
	}
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	translations := filepath.Join(dir, "translations.csv")
	w, err := New([]string{translations}, newRecordingHandler().handle)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"write", fsnotify.Event{Name: translations, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: translations, Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: translations, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: translations, Op: fsnotify.Remove}, false},
		{"other_file", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.expected {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.expected)
			}
		})
	}
}

func TestWatcher_LoopDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	translations := filepath.Join(dir, "translations.csv")
	translators := filepath.Join(dir, "translators.csv")

	handler := newRecordingHandler()
	w, err := New([]string{translations, translators}, handler.handle,
		WithDebounce(100*time.Millisecond), WithLogger(quiet))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := make(chan error, 1)
	go func() { finished <- w.loop(ctx, events, errs) }()

	events <- fsnotify.Event{Name: translations, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: translations, Op: fsnotify.Write}
	errs <- errors.New("queue overflow")
	events <- fsnotify.Event{Name: translators, Op: fsnotify.Create}
	handler.wait(t)

	if handler.count() != 1 {
		t.Fatalf("Expected one handler call for the burst, got %d", handler.count())
	}
	changed := handler.calls[0]
	if len(changed) != 2 || changed[0] != translations || changed[1] != translators {
		t.Errorf("Unexpected changed paths: %v", changed)
	}

	cancel()
	if err := <-finished; err != nil {
		t.Errorf("loop returned %v", err)
	}
}

func TestWatcher_LoopSurvivesHandlerErrors(t *testing.T) {
	translations := filepath.Join(t.TempDir(), "translations.csv")
	handler := newRecordingHandler()
	handler.err = errors.New("missing column")

	w, err := New([]string{translations}, handler.handle,
		WithDebounce(time.Millisecond), WithLogger(quiet))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.loop(ctx, events, errs)

	events <- fsnotify.Event{Name: translations, Op: fsnotify.Write}
	handler.wait(t)
	events <- fsnotify.Event{Name: translations, Op: fsnotify.Write}
	handler.wait(t)

	if handler.count() != 2 {
		t.Errorf("Expected the watcher to keep running after errors, got %d calls", handler.count())
	}
}

func TestWatcher_LoopStopsWhenEventsClose(t *testing.T) {
	w, err := New([]string{"translations.csv"}, newRecordingHandler().handle, WithLogger(quiet))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	events := make(chan fsnotify.Event)
	close(events)

	if err := w.loop(context.Background(), events, make(chan error)); err != nil {
		t.Errorf("Expected nil on closed events, got %v", err)
	}
}

func TestWatcher_RunDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	translations := filepath.Join(dir, "translations.csv")
	if err := os.WriteFile(translations, []byte("Journal;Year;Issue_ID\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	handler := newRecordingHandler()
	w, err := New([]string{translations}, handler.handle,
		WithDebounce(10*time.Millisecond), WithLogger(quiet))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	finished := make(chan error, 1)
	go func() { finished <- w.Run(ctx) }()

	// Keep writing until the watcher has registered the directory.
	deadline := time.Now().Add(5 * time.Second)
	for handler.count() == 0 && time.Now().Before(deadline) {
		if err := os.WriteFile(translations, []byte("Journal;Year;Issue_ID\nKA;1946;2\n"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	if handler.count() == 0 {
		t.Fatal("handler was not called after writing the input")
	}

	cancel()
	if err := <-finished; err != nil {
		t.Errorf("Run returned %v", err)
	}
}
