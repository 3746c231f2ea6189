package automation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobscout/internal/config"
)

func TestSelectorsWatcherRequiresPath(t *testing.T) {
	_, err := NewSelectorsWatcher("", time.Second, nil, nil)
	if err == nil {
		t.Error("Expected error for empty selectors file path")
	}
}

func TestSelectorsWatcherReloadsOnChange(t *testing.T) {
	tempDir := t.TempDir()
	selectorsFile := filepath.Join(tempDir, "selectors.yaml")

	if err := os.WriteFile(selectorsFile, []byte("search:\n  card: \"div.first\"\n"), 0600); err != nil {
		t.Fatalf("Failed to create selectors file: %v", err)
	}

	reloaded := make(chan config.Selectors, 1)
	watcher, err := NewSelectorsWatcher(selectorsFile, 10*time.Millisecond, func(s config.Selectors) {
		select {
		case reloaded <- s:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			t.Errorf("Failed to stop watcher: %v", err)
		}
	}()

	if !watcher.IsRunning() {
		t.Fatal("Expected watcher to be running")
	}

	// Let the filesystem clock tick past the initial mod time
	time.Sleep(20 * time.Millisecond)

	if err := os.WriteFile(selectorsFile, []byte("search:\n  card: \"div.second\"\n"), 0600); err != nil {
		t.Fatalf("Failed to update selectors file: %v", err)
	}

	select {
	case selectors := <-reloaded:
		if selectors.Search.Card != "div.second" {
			t.Errorf("Expected reloaded card selector, got %q", selectors.Search.Card)
		}
		// Untouched keys keep their defaults
		if selectors.Apply.SubmitButton != config.DefaultSelectors().Apply.SubmitButton {
			t.Errorf("Expected default submit selector, got %q", selectors.Apply.SubmitButton)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for selectors reload")
	}
}

func TestSelectorsWatcherDoubleStart(t *testing.T) {
	tempDir := t.TempDir()
	selectorsFile := filepath.Join(tempDir, "selectors.yaml")
	if err := os.WriteFile(selectorsFile, []byte("search:\n  card: \"div.card\"\n"), 0600); err != nil {
		t.Fatalf("Failed to create selectors file: %v", err)
	}

	watcher, err := NewSelectorsWatcher(selectorsFile, 10*time.Millisecond, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := watcher.Start(); err == nil {
		t.Error("Expected error on second Start")
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("Failed to stop watcher: %v", err)
	}

	// Stop on a stopped watcher is a no-op
	if err := watcher.Stop(); err != nil {
		t.Errorf("Expected idempotent Stop, got %v", err)
	}
}
