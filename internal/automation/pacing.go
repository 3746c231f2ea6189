package automation

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"golang.org/x/time/rate"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

// Pacer spaces out page loads. A token bucket enforces the minimum interval
// and a random jitter on top of it keeps the cadence irregular. A nil Pacer
// is a no-op.
type Pacer struct {
	limiter *rate.Limiter
	jitter  time.Duration
	logger  *errors.Logger

	// onDelay, when set, receives each applied delay.
	onDelay func(time.Duration)
}

// NewPacer creates a pacer from the browser pacing configuration. Returns
// nil when pacing is disabled.
func NewPacer(cfg config.PacingConfig, logger *errors.Logger) *Pacer {
	if !cfg.Enabled {
		return nil
	}

	minDelay := cfg.MinDelay
	if minDelay <= 0 {
		minDelay = time.Second
	}
	jitter := cfg.MaxDelay - minDelay
	if jitter < 0 {
		jitter = 0
	}

	// One event per minimum interval, no burst beyond a single token.
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(minDelay), 1),
		jitter:  jitter,
		logger:  logger,
	}
}

// SetDelayObserver registers a callback invoked with each applied delay.
func (p *Pacer) SetDelayObserver(fn func(time.Duration)) {
	if p == nil {
		return
	}
	p.onDelay = fn
}

// Wait blocks until the next page load is allowed. The first call consumes
// the initial token and returns immediately.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	if p.jitter > 0 {
		extra := randomDuration(p.jitter)
		timer := time.NewTimer(extra)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	delay := time.Since(start)
	if p.onDelay != nil {
		p.onDelay(delay)
	}
	if p.logger != nil && delay > 0 {
		p.logger.Debug("Paced page load", "delay", delay.String())
	}
	return nil
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// randomDuration returns a cryptographically random duration in [0, max).
func randomDuration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return max / 2
	}
	return time.Duration(n.Int64())
}
