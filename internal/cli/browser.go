package cli

import (
	"context"
	"fmt"
	"time"

	"jobscout/internal/automation"
	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/observability"
)

// browserRig bundles the pieces the browser-driven commands share: an
// attached session, the active selector set, pacing, and the optional
// selectors file watcher.
type browserRig struct {
	session   *automation.ChromeSession
	pacer     *automation.Pacer
	watcher   *automation.SelectorsWatcher
	selectors config.Selectors
}

// newBrowserRig loads the selector set, attaches to the configured browser,
// and wires pacing delays into the metrics pipeline.
func newBrowserRig(ctx context.Context, cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) (*browserRig, error) {
	selectors, err := config.LoadSelectors(cfg.Browser.SelectorsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load selectors: %w", err)
	}

	session, err := automation.NewChromeSession(ctx, cfg.Browser, logger)
	if err != nil {
		return nil, err
	}

	pacer := automation.NewPacer(cfg.Browser.Pacing, logger)
	if pacer != nil {
		metrics := om.GetMetrics()
		pacer.SetDelayObserver(func(delay time.Duration) {
			metrics.RecordPacingDelay(ctx, delay, om)
		})
	}

	return &browserRig{
		session:   session,
		pacer:     pacer,
		selectors: selectors,
	}, nil
}

// watchSelectors starts the selectors file watcher when hot reload is
// configured. onReload receives every successfully parsed selector set.
func (r *browserRig) watchSelectors(ctx context.Context, cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager, onReload func(config.Selectors)) error {
	if !cfg.Browser.AutoReloadSelectors || cfg.Browser.SelectorsFile == "" {
		return nil
	}

	metrics := om.GetMetrics()
	watcher, err := automation.NewSelectorsWatcher(cfg.Browser.SelectorsFile, cfg.Browser.ReloadDebounce, func(selectors config.Selectors) {
		metrics.RecordSelectorReload(ctx, om)
		onReload(selectors)
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create selectors watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start selectors watcher: %w", err)
	}

	r.watcher = watcher
	return nil
}

// close tears down the watcher and the browser session.
func (r *browserRig) close(logger *errors.Logger) {
	if r.watcher != nil {
		if err := r.watcher.Stop(); err != nil {
			logger.Warn("Failed to stop selectors watcher", "error", err)
		}
	}
	r.session.Close()
}
