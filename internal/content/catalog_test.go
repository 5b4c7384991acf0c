package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestCatalogReload(t *testing.T) {
	dir := fullContent(t)
	c := NewCatalog(dir)
	if c.Loaded() {
		t.Fatal("catalog should start unloaded")
	}
	if got := len(c.Snapshot().Articles); got != 0 {
		t.Errorf("empty snapshot has %d articles", got)
	}

	var calls int
	if err := c.Subscribe(context.Background(), func(context.Context, *Snapshot) error { calls++; return nil }); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("subscriber called before first load")
	}

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("subscriber calls = %d, want 1", calls)
	}
	if got := len(c.Snapshot().Articles); got != 4 {
		t.Errorf("articles = %d, want 4", got)
	}

	// A broken file keeps the previous snapshot.
	if err := os.WriteFile(filepath.Join(dir, BlogFile), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot()
	if err := c.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if c.Snapshot() != before {
		t.Error("snapshot replaced after failed reload")
	}
	if calls != 1 {
		t.Errorf("subscriber called on failed reload")
	}
}

func TestCatalogSubscribeAfterLoad(t *testing.T) {
	c := NewCatalog(fullContent(t))
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	var got *Snapshot
	err := c.Subscribe(context.Background(), func(_ context.Context, s *Snapshot) error { got = s; return nil })
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got != c.Snapshot() {
		t.Error("late subscriber should receive the current snapshot")
	}
}

func TestCatalogSubscriberErrorKeepsSnapshot(t *testing.T) {
	dir := fullContent(t)
	c := NewCatalog(dir)
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot()

	errRebuild := errors.New("rebuild failed")
	if err := c.Subscribe(context.Background(), func(context.Context, *Snapshot) error { return nil }); err != nil {
		t.Fatal(err)
	}
	fail := true
	c.Subscribe(context.Background(), func(context.Context, *Snapshot) error {
		if fail {
			return errRebuild
		}
		return nil
	})

	err := c.Reload(context.Background())
	if !errors.Is(err, errRebuild) {
		t.Fatalf("Reload() error = %v, want %v", err, errRebuild)
	}
	if c.Snapshot() != before {
		t.Error("snapshot replaced although a subscriber rejected it")
	}

	fail = false
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if c.Snapshot() == before {
		t.Error("snapshot not replaced after a successful reload")
	}
}

func TestCatalogOverlappingReloadsKeepNewest(t *testing.T) {
	dir := fullContent(t)
	c := NewCatalog(dir)

	// The first delivery blocks until released so a second reload can start meanwhile.
	release := make(chan struct{})
	var (
		mu   sync.Mutex
		seen []int
		once sync.Once
	)
	err := c.Subscribe(context.Background(), func(_ context.Context, s *Snapshot) error {
		mu.Lock()
		seen = append(seen, len(s.Articles))
		mu.Unlock()
		once.Do(func() { <-release })
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	first := make(chan error, 1)
	go func() { first <- c.Reload(context.Background()) }()
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	})

	newer := `{"posts": [{"slug": "only", "title": "Only", "excerpt": "One", "visibility": true}]}`
	if err := os.WriteFile(filepath.Join(dir, BlogFile), []byte(newer), 0o644); err != nil {
		t.Fatal(err)
	}
	second := make(chan error, 1)
	go func() { second <- c.Reload(context.Background()) }()

	// Give the second reload time to run ahead if it could.
	time.Sleep(50 * time.Millisecond)
	close(release)
	if err := <-first; err != nil {
		t.Fatal(err)
	}
	if err := <-second; err != nil {
		t.Fatal(err)
	}

	if got := len(c.Snapshot().Articles); got != 1 {
		t.Errorf("articles = %d, want 1: an older load replaced a newer one", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 1 {
		t.Errorf("subscriber saw %v, want [4 1]", seen)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
