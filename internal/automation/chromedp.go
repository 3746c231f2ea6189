package automation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

// ChromeSession attaches to an already-running browser over the DevTools
// protocol. The browser is never launched or closed by this process.
type ChromeSession struct {
	taskCtx        context.Context
	cancelTask     context.CancelFunc
	cancelAlloc    context.CancelFunc
	elementTimeout time.Duration
	navTimeout     time.Duration
	logger         *errors.Logger
}

// NewChromeSession connects to the browser at cfg.CDPURL and opens a tab.
func NewChromeSession(ctx context.Context, cfg config.BrowserConfig, logger *errors.Logger) (*ChromeSession, error) {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, cfg.CDPURL)
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)

	// Establish the connection up front so a dead endpoint fails here
	// rather than on the first navigation.
	if err := chromedp.Run(taskCtx); err != nil {
		cancelTask()
		cancelAlloc()
		return nil, errors.NewAutomationError(errors.ErrCodeSessionFailed,
			fmt.Sprintf("Failed to attach to browser at %s", cfg.CDPURL), err)
	}

	if logger != nil {
		logger.Info("Attached to browser session", "cdp_url", cfg.CDPURL)
	}

	return &ChromeSession{
		taskCtx:        taskCtx,
		cancelTask:     cancelTask,
		cancelAlloc:    cancelAlloc,
		elementTimeout: cfg.ElementTimeout,
		navTimeout:     cfg.NavigationTimeout,
		logger:         logger,
	}, nil
}

// Close detaches from the browser. The browser itself keeps running.
func (s *ChromeSession) Close() {
	s.cancelTask()
	s.cancelAlloc()
}

// Navigate loads the URL and waits for the document body to be ready.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.boundedCtx(ctx, s.navTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return errors.NewAutomationError(errors.ErrCodeSessionFailed,
			fmt.Sprintf("Failed to navigate to %s", url), err)
	}
	return nil
}

// QuerySelector returns the first match, or (nil, nil) when absent.
func (s *ChromeSession) QuerySelector(ctx context.Context, selector string) (Element, error) {
	elements, err := s.QuerySelectorAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, nil
	}
	return elements[0], nil
}

// QuerySelectorAll returns all matches for the selector.
func (s *ChromeSession) QuerySelectorAll(ctx context.Context, selector string) ([]Element, error) {
	runCtx, cancel := s.boundedCtx(ctx, s.elementTimeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(runCtx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, errors.NewAutomationError(errors.ErrCodeElementTimeout,
			fmt.Sprintf("Query for %q did not complete", selector), err)
	}

	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &chromeElement{session: s, node: node})
	}
	return elements, nil
}

// WaitFor reports whether an element matching the selector appears within
// the timeout.
func (s *ChromeSession) WaitFor(ctx context.Context, selector string, timeout time.Duration) bool {
	runCtx, cancel := s.boundedCtx(ctx, timeout)
	defer cancel()

	err := chromedp.Run(runCtx, chromedp.WaitReady(selector, chromedp.ByQuery))
	return err == nil
}

// ScrollBottom scrolls the matched container (or the page when selector is
// empty) to its bottom and returns the scroll height.
func (s *ChromeSession) ScrollBottom(ctx context.Context, selector string) (int64, error) {
	runCtx, cancel := s.boundedCtx(ctx, s.elementTimeout)
	defer cancel()

	var target string
	if selector == "" {
		target = "document.scrollingElement"
	} else {
		target = fmt.Sprintf("(document.querySelector(%q) || document.scrollingElement)", selector)
	}
	script := fmt.Sprintf(`(function() {
		var el = %s;
		el.scrollTop = el.scrollHeight;
		return el.scrollHeight;
	})()`, target)

	var height int64
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, &height)); err != nil {
		return 0, errors.NewAutomationError(errors.ErrCodeSessionFailed,
			"Failed to scroll result container", err)
	}
	return height, nil
}

// boundedCtx derives a run context from the session's task context, bounded
// by both the caller's context and the given timeout.
func (s *ChromeSession) boundedCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	// chromedp actions must run on the task context; honor the caller's
	// deadline by bounding the task context with the shorter timeout.
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.taskCtx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.taskCtx)
	}

	// Propagate caller cancellation into the derived run context.
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// chromeElement wraps one DOM node resolved through the session.
type chromeElement struct {
	session *ChromeSession
	node    *cdp.Node
}

func (e *chromeElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	runCtx, cancel := e.session.boundedCtx(ctx, e.session.elementTimeout)
	defer cancel()

	var text string
	if err := chromedp.Run(runCtx, chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", errors.NewAutomationError(errors.ErrCodeElementTimeout,
			"Failed to read element text", err)
	}
	return strings.TrimSpace(text), nil
}

func (e *chromeElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	runCtx, cancel := e.session.boundedCtx(ctx, e.session.elementTimeout)
	defer cancel()

	var value string
	var ok bool
	err := chromedp.Run(runCtx,
		chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID),
	)
	if err != nil {
		return "", false, errors.NewAutomationError(errors.ErrCodeElementTimeout,
			fmt.Sprintf("Failed to read attribute %q", name), err)
	}
	return value, ok, nil
}

func (e *chromeElement) TagName(ctx context.Context) (string, error) {
	return strings.ToLower(e.node.NodeName), nil
}

func (e *chromeElement) Click(ctx context.Context) error {
	runCtx, cancel := e.session.boundedCtx(ctx, e.session.elementTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(e.ids(), chromedp.ByNodeID)); err != nil {
		return errors.NewAutomationError(errors.ErrCodeElementTimeout,
			"Failed to click element", err)
	}
	return nil
}

func (e *chromeElement) Fill(ctx context.Context, value string) error {
	runCtx, cancel := e.session.boundedCtx(ctx, e.session.elementTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.SetValue(e.ids(), value, chromedp.ByNodeID)); err != nil {
		return errors.NewAutomationError(errors.ErrCodeElementTimeout,
			"Failed to set element value", err)
	}
	return nil
}

func (e *chromeElement) Options(ctx context.Context) ([]string, error) {
	options, err := e.QuerySelectorAll(ctx, "option")
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(options))
	for _, option := range options {
		text, err := option.Text(ctx)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func (e *chromeElement) SelectOption(ctx context.Context, text string) error {
	options, err := e.QuerySelectorAll(ctx, "option")
	if err != nil {
		return err
	}

	for _, option := range options {
		optionText, err := option.Text(ctx)
		if err != nil {
			return err
		}
		if optionText != text {
			continue
		}

		value, ok, err := option.Attribute(ctx, "value")
		if err != nil {
			return err
		}
		if !ok {
			value = optionText
		}
		return e.Fill(ctx, value)
	}

	return errors.NewAutomationError(errors.ErrCodeElementTimeout,
		fmt.Sprintf("No option with text %q", text), nil)
}

func (e *chromeElement) QuerySelector(ctx context.Context, selector string) (Element, error) {
	elements, err := e.QuerySelectorAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, nil
	}
	return elements[0], nil
}

func (e *chromeElement) QuerySelectorAll(ctx context.Context, selector string) ([]Element, error) {
	runCtx, cancel := e.session.boundedCtx(ctx, e.session.elementTimeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(runCtx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.FromNode(e.node), chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, errors.NewAutomationError(errors.ErrCodeElementTimeout,
			fmt.Sprintf("Query for %q did not complete", selector), err)
	}

	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &chromeElement{session: e.session, node: node})
	}
	return elements, nil
}

func (e *chromeElement) AncestorLabel(ctx context.Context) (string, error) {
	for parent := e.node.Parent; parent != nil; parent = parent.Parent {
		if strings.EqualFold(parent.NodeName, "label") {
			label := &chromeElement{session: e.session, node: parent}
			return label.Text(ctx)
		}
	}
	return "", nil
}
