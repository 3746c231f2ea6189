package automation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeElement is a scriptable Element for tests.
type fakeElement struct {
	tag           string
	text          string
	attrs         map[string]string
	options       []string
	ancestorLabel string
	children      map[string][]*fakeElement

	onClick func()

	clicked  int
	filled   string
	selected string
	fillErr  error
	clickErr error
}

func (e *fakeElement) Text(context.Context) (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(_ context.Context, name string) (string, bool, error) {
	value, ok := e.attrs[name]
	return value, ok, nil
}

func (e *fakeElement) TagName(context.Context) (string, error) {
	if e.tag == "" {
		return "div", nil
	}
	return e.tag, nil
}

func (e *fakeElement) Click(context.Context) error {
	e.clicked++
	if e.clickErr != nil {
		return e.clickErr
	}
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Fill(_ context.Context, value string) error {
	if e.fillErr != nil {
		return e.fillErr
	}
	e.filled = value
	return nil
}

func (e *fakeElement) Options(context.Context) ([]string, error) { return e.options, nil }

func (e *fakeElement) SelectOption(_ context.Context, text string) error {
	e.selected = text
	return nil
}

func (e *fakeElement) QuerySelector(ctx context.Context, selector string) (Element, error) {
	elements, _ := e.QuerySelectorAll(ctx, selector)
	if len(elements) == 0 {
		return nil, nil
	}
	return elements[0], nil
}

func (e *fakeElement) QuerySelectorAll(_ context.Context, selector string) ([]Element, error) {
	matches := e.children[selector]
	elements := make([]Element, 0, len(matches))
	for _, match := range matches {
		elements = append(elements, match)
	}
	return elements, nil
}

func (e *fakeElement) AncestorLabel(context.Context) (string, error) {
	return e.ancestorLabel, nil
}

// fakePage is the scriptable DOM state behind a fakeSession URL.
type fakePage struct {
	mu            sync.Mutex
	elems         map[string][]*fakeElement
	scrollHeights []int64
	scrollCalls   int
}

func newFakePage() *fakePage {
	return &fakePage{elems: make(map[string][]*fakeElement)}
}

func (p *fakePage) set(selector string, elements ...*fakeElement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elems[selector] = elements
}

func (p *fakePage) remove(selector string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.elems, selector)
}

func (p *fakePage) query(selector string) []*fakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elems[selector]
}

// fakeSession is a scriptable Session serving pre-built pages by URL.
type fakeSession struct {
	pages     map[string]*fakePage
	current   *fakePage
	navigated []string
	navErr    error
}

func newFakeSession() *fakeSession {
	return &fakeSession{pages: make(map[string]*fakePage)}
}

func (s *fakeSession) addPage(url string) *fakePage {
	page := newFakePage()
	s.pages[url] = page
	return page
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	if s.navErr != nil {
		return s.navErr
	}
	page, ok := s.pages[url]
	if !ok {
		return fmt.Errorf("no page for %s", url)
	}
	s.current = page
	return nil
}

func (s *fakeSession) QuerySelector(ctx context.Context, selector string) (Element, error) {
	elements, err := s.QuerySelectorAll(ctx, selector)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	return elements[0], nil
}

func (s *fakeSession) QuerySelectorAll(_ context.Context, selector string) ([]Element, error) {
	if s.current == nil {
		return nil, nil
	}
	matches := s.current.query(selector)
	elements := make([]Element, 0, len(matches))
	for _, match := range matches {
		elements = append(elements, match)
	}
	return elements, nil
}

func (s *fakeSession) WaitFor(_ context.Context, selector string, _ time.Duration) bool {
	return s.current != nil && len(s.current.query(selector)) > 0
}

func (s *fakeSession) ScrollBottom(_ context.Context, _ string) (int64, error) {
	if s.current == nil || len(s.current.scrollHeights) == 0 {
		return 0, nil
	}
	idx := s.current.scrollCalls
	if idx >= len(s.current.scrollHeights) {
		idx = len(s.current.scrollHeights) - 1
	}
	s.current.scrollCalls++
	return s.current.scrollHeights[idx], nil
}
