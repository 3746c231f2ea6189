package automation

import (
	"context"
	"testing"

	"jobscout/internal/config"
)

func testBrowserConfig() config.BrowserConfig {
	return config.BrowserConfig{
		Scroll: config.ScrollConfig{MaxAttempts: 5, SettleDelay: 0},
	}
}

// makeCard builds a result card element using the default search selectors.
func makeCard(sel config.SearchSelectors, id, title, company, location string, tags []string, href string) *fakeElement {
	card := &fakeElement{
		attrs:    map[string]string{},
		children: map[string][]*fakeElement{},
	}
	if id != "" {
		card.attrs[sel.CardIDAttr] = id
	}
	if title != "" {
		card.children[sel.Title] = []*fakeElement{{text: title}}
	}
	if company != "" {
		card.children[sel.Company] = []*fakeElement{{text: company}}
	}
	if location != "" {
		card.children[sel.Location] = []*fakeElement{{text: location}}
	}
	if len(tags) > 0 {
		var tagElems []*fakeElement
		for _, tag := range tags {
			tagElems = append(tagElems, &fakeElement{text: tag})
		}
		card.children[sel.Tag] = tagElems
	}
	if href != "" {
		card.children[sel.DetailLink] = []*fakeElement{{
			tag:   "a",
			attrs: map[string]string{"href": href},
		}}
	}
	return card
}

func TestCollectHarvestsCards(t *testing.T) {
	selectors := config.DefaultSelectors()
	sel := selectors.Search

	pageURL := "https://www.linkedin.com/jobs/search/?keywords=Go"
	session := newFakeSession()
	page := session.addPage(pageURL)
	page.scrollHeights = []int64{100, 200, 200}
	page.set(sel.ResultList, &fakeElement{})
	page.set(sel.Card,
		makeCard(sel, "4001", "Go Developer", "Acme GmbH", "Berlin", []string{"Hybrid", "Full-time"}, "/jobs/view/4001"),
		makeCard(sel, "4002", "Platform Engineer", "", "", nil, "https://example.com/jobs/4002"),
	)

	collector := NewCollector(session, selectors, testBrowserConfig(), config.SearchConfig{}, nil, nil)

	records, err := collector.Collect(context.Background(), []string{pageURL})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != "4001" || first.Title != "Go Developer" || first.Company != "Acme GmbH" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "Hybrid" {
		t.Errorf("Expected tags preserved, got %v", first.Tags)
	}
	// Relative detail link resolves against the page URL
	if first.DetailURL != "https://www.linkedin.com/jobs/view/4001" {
		t.Errorf("Expected resolved detail URL, got %q", first.DetailURL)
	}

	// Missing fields degrade to empty strings, not errors
	second := records[1]
	if second.Company != "" || second.Location != "" || len(second.Tags) != 0 {
		t.Errorf("Expected empty degraded fields, got %+v", second)
	}
	if second.DetailURL != "https://example.com/jobs/4002" {
		t.Errorf("Expected absolute detail URL kept, got %q", second.DetailURL)
	}

	// Scrolling stopped once the height settled
	if page.scrollCalls != 3 {
		t.Errorf("Expected 3 scroll calls, got %d", page.scrollCalls)
	}
}

func TestCollectDeduplicatesAcrossPages(t *testing.T) {
	selectors := config.DefaultSelectors()
	sel := selectors.Search

	url1 := "https://www.linkedin.com/jobs/search/?keywords=Go"
	url2 := "https://www.linkedin.com/jobs/search/?keywords=Backend"

	session := newFakeSession()
	page1 := session.addPage(url1)
	page1.set(sel.ResultList, &fakeElement{})
	page1.set(sel.Card,
		makeCard(sel, "1", "Go Developer", "Acme", "", nil, ""),
		makeCard(sel, "2", "SRE", "Initech", "", nil, ""),
	)
	page2 := session.addPage(url2)
	page2.set(sel.ResultList, &fakeElement{})
	page2.set(sel.Card,
		makeCard(sel, "2", "SRE", "Initech", "", nil, ""),
		makeCard(sel, "3", "Backend Engineer", "Globex", "", nil, ""),
	)

	collector := NewCollector(session, selectors, testBrowserConfig(), config.SearchConfig{}, nil, nil)

	records, err := collector.Collect(context.Background(), []string{url1, url2})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 deduplicated records, got %d", len(records))
	}
	if records[0].ID != "1" || records[1].ID != "2" || records[2].ID != "3" {
		t.Errorf("Expected first-seen order, got %v", records)
	}
}

func TestCollectSkipsCardsWithoutIdentity(t *testing.T) {
	selectors := config.DefaultSelectors()
	sel := selectors.Search

	pageURL := "https://www.linkedin.com/jobs/search/?keywords=Go"
	session := newFakeSession()
	page := session.addPage(pageURL)
	page.set(sel.ResultList, &fakeElement{})
	page.set(sel.Card,
		makeCard(sel, "", "No Identity", "Acme", "", nil, ""),
		makeCard(sel, "7", "Kept", "Acme", "", nil, ""),
	)

	collector := NewCollector(session, selectors, testBrowserConfig(), config.SearchConfig{}, nil, nil)

	records, err := collector.Collect(context.Background(), []string{pageURL})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "7" {
		t.Errorf("Expected only the identifiable card, got %v", records)
	}
}

func TestCollectCapsSearchURLs(t *testing.T) {
	selectors := config.DefaultSelectors()
	sel := selectors.Search

	urls := []string{
		"https://www.linkedin.com/jobs/search/?keywords=A",
		"https://www.linkedin.com/jobs/search/?keywords=B",
		"https://www.linkedin.com/jobs/search/?keywords=C",
	}
	session := newFakeSession()
	for _, u := range urls[:2] {
		page := session.addPage(u)
		page.set(sel.ResultList, &fakeElement{})
	}

	collector := NewCollector(session, selectors, testBrowserConfig(),
		config.SearchConfig{MaxURLs: 2}, nil, nil)

	if _, err := collector.Collect(context.Background(), urls); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(session.navigated) != 2 {
		t.Errorf("Expected 2 navigations, got %v", session.navigated)
	}
}

func TestCollectContinuesPastFailedPage(t *testing.T) {
	selectors := config.DefaultSelectors()
	sel := selectors.Search

	good := "https://www.linkedin.com/jobs/search/?keywords=Good"
	missing := "https://www.linkedin.com/jobs/search/?keywords=Missing"

	session := newFakeSession()
	page := session.addPage(good)
	page.set(sel.ResultList, &fakeElement{})
	page.set(sel.Card, makeCard(sel, "9", "Survivor", "Acme", "", nil, ""))

	collector := NewCollector(session, selectors, testBrowserConfig(), config.SearchConfig{}, nil, nil)

	records, err := collector.Collect(context.Background(), []string{missing, good})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "9" {
		t.Errorf("Expected the good page's record, got %v", records)
	}
}

func TestUpdateSelectorsTakesEffect(t *testing.T) {
	selectors := config.DefaultSelectors()

	custom := config.DefaultSelectors()
	custom.Search.Card = "li.custom-card"
	custom.Search.CardIDAttr = "data-custom-id"

	pageURL := "https://www.linkedin.com/jobs/search/?keywords=Go"
	session := newFakeSession()
	page := session.addPage(pageURL)
	page.set(custom.Search.ResultList, &fakeElement{})
	page.set("li.custom-card", &fakeElement{
		attrs:    map[string]string{"data-custom-id": "42"},
		children: map[string][]*fakeElement{},
	})

	collector := NewCollector(session, selectors, testBrowserConfig(), config.SearchConfig{}, nil, nil)
	collector.UpdateSelectors(custom)

	records, err := collector.Collect(context.Background(), []string{pageURL})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "42" {
		t.Errorf("Expected record found via updated selectors, got %v", records)
	}
}
