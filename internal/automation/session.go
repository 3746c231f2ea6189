// Package automation drives an already-running browser over the DevTools
// protocol to collect search results and walk quick-apply forms.
package automation

import (
	"context"
	"time"
)

// Session is a live page in the attached browser. Implementations return
// (nil, nil) from QuerySelector when the element is absent; absence is not
// an error.
type Session interface {
	// Navigate loads the given URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// QuerySelector returns the first element matching the CSS selector,
	// or (nil, nil) when no element matches.
	QuerySelector(ctx context.Context, selector string) (Element, error)

	// QuerySelectorAll returns all elements matching the CSS selector.
	QuerySelectorAll(ctx context.Context, selector string) ([]Element, error)

	// WaitFor blocks until an element matching the selector is present or
	// the timeout elapses. It reports presence; timing out is not an error.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) bool

	// ScrollBottom scrolls the element matching the selector (or the page
	// when the selector is empty) to its bottom and returns the resulting
	// scroll height.
	ScrollBottom(ctx context.Context, selector string) (int64, error)
}

// Element is one DOM node discovered through a Session.
type Element interface {
	// Text returns the visible text content of the element.
	Text(ctx context.Context) (string, error)

	// Attribute returns the value of the named attribute and whether it
	// is present.
	Attribute(ctx context.Context, name string) (string, bool, error)

	// TagName returns the lowercase tag name.
	TagName(ctx context.Context) (string, error)

	// Click dispatches a click on the element.
	Click(ctx context.Context) error

	// Fill sets the element's value.
	Fill(ctx context.Context, value string) error

	// Options returns the visible texts of a select element's options.
	Options(ctx context.Context) ([]string, error)

	// SelectOption selects the option whose visible text matches.
	SelectOption(ctx context.Context, text string) error

	// QuerySelector returns the first descendant matching the CSS
	// selector, or (nil, nil) when none matches.
	QuerySelector(ctx context.Context, selector string) (Element, error)

	// QuerySelectorAll returns all descendants matching the CSS selector.
	QuerySelectorAll(ctx context.Context, selector string) ([]Element, error)

	// AncestorLabel returns the text of the nearest enclosing label
	// element, or "" when the element has none.
	AncestorLabel(ctx context.Context) (string, error)
}
