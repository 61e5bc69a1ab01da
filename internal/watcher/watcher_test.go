package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Watch: %v", err)
		}
	})
	// let the watcher register its directories
	time.Sleep(100 * time.Millisecond)
}

func TestWatchReportsChange(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "bpauto.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(conf, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 10)
	w := New(func(path string) { changed <- path }, conf).WithDebounce(20 * time.Millisecond)
	startWatcher(t, w)

	if err := os.WriteFile(other, []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(conf, []byte("a: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(conf)
		if got != want {
			t.Errorf("changed path = %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchDebounces(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "bpauto.yaml")
	if err := os.WriteFile(conf, nil, 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 10)
	w := New(func(path string) { changed <- path }, conf).WithDebounce(300 * time.Millisecond)
	startWatcher(t, w)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(conf, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changed:
		t.Error("burst of writes reported more than once")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(func(string) {}, filepath.Join(t.TempDir(), "missing", "bpauto.yaml"))
	if err := w.Watch(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}
