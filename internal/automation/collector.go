package automation

import (
	"context"
	"net/url"
	"sync"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"
)

// Collector walks search result pages and harvests listing records. Card
// fields degrade individually: a card missing its company or tags still
// yields a record, with the absent fields left empty.
type Collector struct {
	session    Session
	pacer      *Pacer
	browserCfg config.BrowserConfig
	searchCfg  config.SearchConfig
	logger     *errors.Logger

	mu        sync.RWMutex
	selectors config.SearchSelectors

	// onCollected, when set, receives the count of records harvested
	// from each page.
	onCollected func(int)
}

// NewCollector creates a collector over an attached session.
func NewCollector(session Session, selectors config.Selectors, browserCfg config.BrowserConfig, searchCfg config.SearchConfig, pacer *Pacer, logger *errors.Logger) *Collector {
	return &Collector{
		session:    session,
		pacer:      pacer,
		browserCfg: browserCfg,
		searchCfg:  searchCfg,
		logger:     logger,
		selectors:  selectors.Search,
	}
}

// UpdateSelectors swaps the active search selectors. Safe to call from the
// selectors watcher while a collection run is in progress; the new set
// takes effect on the next page.
func (c *Collector) UpdateSelectors(selectors config.Selectors) {
	c.mu.Lock()
	c.selectors = selectors.Search
	c.mu.Unlock()
}

// SetCollectedObserver registers a callback invoked with each page's
// harvested record count.
func (c *Collector) SetCollectedObserver(fn func(int)) {
	c.onCollected = fn
}

func (c *Collector) currentSelectors() config.SearchSelectors {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectors
}

// Collect visits each search URL in order and returns the deduplicated
// listing records. The seen set spans the whole run, so a listing surfacing
// under several queries is recorded once. A page that fails to load is
// skipped, not fatal.
func (c *Collector) Collect(ctx context.Context, urls []string) ([]types.ListingRecord, error) {
	if c.searchCfg.MaxURLs > 0 && len(urls) > c.searchCfg.MaxURLs {
		if c.logger != nil {
			c.logger.Info("Capping search URLs", "requested", len(urls), "max", c.searchCfg.MaxURLs)
		}
		urls = urls[:c.searchCfg.MaxURLs]
	}

	var records []types.ListingRecord
	seen := make(map[string]bool)

	for _, pageURL := range urls {
		if err := c.pacer.Wait(ctx); err != nil {
			return records, err
		}

		pageRecords, err := c.collectPage(ctx, pageURL, seen)
		if err != nil {
			if ctx.Err() != nil {
				return records, err
			}
			if c.logger != nil {
				c.logger.LogError(err, "Skipping search page", "url", pageURL)
			}
			continue
		}

		records = append(records, pageRecords...)
		if c.onCollected != nil {
			c.onCollected(len(pageRecords))
		}
		if c.logger != nil {
			c.logger.Info("Collected search page",
				"url", pageURL,
				"new_listings", len(pageRecords),
				"total_listings", len(records))
		}
	}

	return records, nil
}

func (c *Collector) collectPage(ctx context.Context, pageURL string, seen map[string]bool) ([]types.ListingRecord, error) {
	selectors := c.currentSelectors()

	if err := c.session.Navigate(ctx, pageURL); err != nil {
		return nil, err
	}

	if !c.session.WaitFor(ctx, selectors.ResultList, c.browserCfg.ElementTimeout) {
		return nil, errors.NewAutomationError(errors.ErrCodeElementTimeout,
			"Result list did not appear", nil).WithContext("url", pageURL)
	}

	if err := c.scrollToSettle(ctx, selectors.ResultList); err != nil {
		return nil, err
	}

	cards, err := c.session.QuerySelectorAll(ctx, selectors.Card)
	if err != nil {
		return nil, err
	}

	var records []types.ListingRecord
	for _, card := range cards {
		record, ok := c.extractCard(ctx, card, pageURL, selectors)
		if !ok {
			continue
		}
		if seen[record.ID] {
			continue
		}
		seen[record.ID] = true
		records = append(records, record)
	}
	return records, nil
}

// scrollToSettle scrolls the result container until its height stops
// growing or the attempt bound is reached. Each scroll is followed by a
// settle delay so lazily loaded cards can arrive.
func (c *Collector) scrollToSettle(ctx context.Context, containerSelector string) error {
	var lastHeight int64 = -1
	for attempt := 0; attempt < c.browserCfg.Scroll.MaxAttempts; attempt++ {
		height, err := c.session.ScrollBottom(ctx, containerSelector)
		if err != nil {
			return err
		}

		if err := sleepCtx(ctx, c.browserCfg.Scroll.SettleDelay); err != nil {
			return err
		}

		if height == lastHeight {
			return nil
		}
		lastHeight = height
	}
	return nil
}

// extractCard reads one result card. Returns false when the card carries no
// usable identity.
func (c *Collector) extractCard(ctx context.Context, card Element, pageURL string, selectors config.SearchSelectors) (types.ListingRecord, bool) {
	id, ok, err := card.Attribute(ctx, selectors.CardIDAttr)
	if err != nil || !ok || id == "" {
		if c.logger != nil {
			c.logger.Warn("Skipping card without identity",
				"attribute", selectors.CardIDAttr, "error", err)
		}
		return types.ListingRecord{}, false
	}

	record := types.ListingRecord{
		ID:           id,
		Title:        c.childText(ctx, card, selectors.Title),
		Company:      c.childText(ctx, card, selectors.Company),
		Location:     c.childText(ctx, card, selectors.Location),
		BenefitsNote: c.childText(ctx, card, selectors.BenefitsNote),
	}

	if tags, err := card.QuerySelectorAll(ctx, selectors.Tag); err == nil {
		for _, tag := range tags {
			if text, err := tag.Text(ctx); err == nil && text != "" {
				record.Tags = append(record.Tags, text)
			}
		}
	}

	if link, err := card.QuerySelector(ctx, selectors.DetailLink); err == nil && link != nil {
		if href, ok, err := link.Attribute(ctx, "href"); err == nil && ok {
			record.DetailURL = resolveURL(pageURL, href)
		}
	}

	return record, true
}

// childText returns the text of the first descendant matching the selector,
// or "" when it is absent or unreadable.
func (c *Collector) childText(ctx context.Context, parent Element, selector string) string {
	element, err := parent.QuerySelector(ctx, selector)
	if err != nil || element == nil {
		return ""
	}
	text, err := element.Text(ctx)
	if err != nil {
		return ""
	}
	return text
}

// resolveURL resolves href against the page URL. Malformed inputs fall back
// to the raw href.
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
