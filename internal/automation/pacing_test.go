package automation

import (
	"context"
	"testing"
	"time"

	"jobscout/internal/config"
)

func TestNewPacerDisabled(t *testing.T) {
	pacer := NewPacer(config.PacingConfig{Enabled: false}, nil)
	if pacer != nil {
		t.Fatal("Expected nil pacer when pacing is disabled")
	}

	// A nil pacer is a no-op
	if err := pacer.Wait(context.Background()); err != nil {
		t.Errorf("Expected nil pacer Wait to succeed, got %v", err)
	}
}

func TestPacerEnforcesMinimumInterval(t *testing.T) {
	pacer := NewPacer(config.PacingConfig{
		Enabled:  true,
		MinDelay: 50 * time.Millisecond,
		MaxDelay: 50 * time.Millisecond, // no jitter
	}, nil)

	ctx := context.Background()

	// First call consumes the initial token
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("First Wait failed: %v", err)
	}

	start := time.Now()
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("Second Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Expected at least ~50ms between page loads, got %v", elapsed)
	}
}

func TestPacerHonorsCancellation(t *testing.T) {
	pacer := NewPacer(config.PacingConfig{
		Enabled:  true,
		MinDelay: time.Hour,
		MaxDelay: time.Hour,
	}, nil)

	ctx := context.Background()
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("First Wait failed: %v", err)
	}

	cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	if err := pacer.Wait(cancelCtx); err == nil {
		t.Error("Expected error when context expires during wait")
	}
}

func TestPacerReportsDelays(t *testing.T) {
	pacer := NewPacer(config.PacingConfig{
		Enabled:  true,
		MinDelay: 10 * time.Millisecond,
		MaxDelay: 20 * time.Millisecond,
	}, nil)

	var observed []time.Duration
	pacer.SetDelayObserver(func(d time.Duration) {
		observed = append(observed, d)
	})

	ctx := context.Background()
	for range 3 {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	if len(observed) != 3 {
		t.Errorf("Expected 3 observed delays, got %d", len(observed))
	}
}

func TestRandomDuration(t *testing.T) {
	max := 5 * time.Second
	for range 100 {
		d := randomDuration(max)
		if d < 0 || d >= max {
			t.Fatalf("Expected duration in [0, %v), got %v", max, d)
		}
	}

	if d := randomDuration(0); d != 0 {
		t.Errorf("Expected 0 for non-positive max, got %v", d)
	}
}
