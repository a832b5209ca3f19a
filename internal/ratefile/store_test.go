package ratefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stacksolutions/estimator/internal/estimation"
)

func TestNewStore_DefaultsWhenNil(t *testing.T) {
	s := NewStore(nil)
	if s.Current() == nil {
		t.Fatal("expected a table")
	}
	if _, ok := s.Current().ProjectType("web"); !ok {
		t.Error("expected built-in table")
	}
}

func TestStore_ReplaceIgnoresNil(t *testing.T) {
	table := estimation.DefaultRateTable()
	s := NewStore(table)
	s.Replace(nil)
	if s.Current() != table {
		t.Error("expected nil replacement to be ignored")
	}
}

func TestStore_ReloadFromKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(nil)
	if err := s.ReloadFrom(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Current().ProjectType("mobile"); ok {
		t.Fatal("expected minimal table to be active")
	}
	loaded := s.Current()

	if err := os.WriteFile(path, []byte("project_types: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.ReloadFrom(path); err == nil {
		t.Fatal("expected reload error")
	}
	if s.Current() != loaded {
		t.Error("expected previous table to stay active")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(nil)

	w, err := NewWatcher(path, s, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Current().ProjectType("mobile"); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected watcher to load the minimal table")
}

func TestDebouncer_Coalesces(t *testing.T) {
	calls := make(chan struct{}, 10)
	d := newDebouncer(20*time.Millisecond, func() { calls <- struct{}{} })
	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	time.Sleep(100 * time.Millisecond)
	d.Stop()
	if got := len(calls); got != 1 {
		t.Errorf("expected 1 callback, got %d", got)
	}
}
