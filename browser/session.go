// Package browser owns the single chromedp session a scrape runs in.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"rera-scraper/config"
	"rera-scraper/models"
	"rera-scraper/utils"
)

const hideWebdriverJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Target addresses an element by XPath, optionally relative to the Index-th
// element matching the Container CSS selector.
type Target struct {
	Container string
	Index     int
	XPath     string
}

// Session is a single browser tab driven through chromedp. It is not safe for
// concurrent use; a scrape drives it from one goroutine for its whole life.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger
	pacer  *utils.Pacer

	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewSession launches Chrome and opens the tab every later call drives.
func NewSession(cfg *config.Config, logger *utils.Logger) (*Session, error) {
	logger = logger.With("browser")

	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("Using browser binary: %s (headless=%v)", displayBinary(chromeBin), cfg.Headless)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// chromedp is chatty about CDP events it does not model; keep that at debug.
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Debug),
		chromedp.WithErrorf(logger.Debug),
	)

	s := &Session{
		cfg:         cfg,
		logger:      logger,
		pacer:       utils.NewPacer(cfg.NavigationInterval),
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(hideWebdriverJS).Do(ctx)
		return err
	}))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: start chrome: %w", err)
	}

	return s, nil
}

// Navigate loads url and waits for the load event, bounded by the page-load timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.pacer.Wait(ctx); err != nil {
		return err
	}
	s.logger.Info("Loading: %s", url)
	if err := s.run(ctx, s.cfg.PageLoadTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitPresent waits until an element matching the CSS selector is in the DOM.
func (s *Session) WaitPresent(ctx context.Context, selector string) error {
	if err := s.run(ctx, s.cfg.WaitTimeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// firstVisibleJS reports whether the first XPath match in document order is
// rendered. Later matches are ignored, matching the element act clicks.
const firstVisibleJS = `function(xpath) {
	var el = document.evaluate(xpath, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el || el.getClientRects().length === 0) { return false; }
	return window.getComputedStyle(el).visibility !== 'hidden';
}`

// WaitVisibleXPath waits until the first element matching the XPath is visible.
func (s *Session) WaitVisibleXPath(ctx context.Context, xpath string) error {
	var visible bool
	poll := chromedp.PollFunction(firstVisibleJS, &visible,
		chromedp.WithPollingArgs(xpath),
		chromedp.WithPollingInterval(100*time.Millisecond),
		chromedp.WithPollingTimeout(0),
	)
	if err := s.run(ctx, s.cfg.WaitTimeout, poll); err != nil {
		return fmt.Errorf("wait for visible %q: %w", xpath, err)
	}
	return nil
}

// OuterHTMLAll returns the outer HTML of every element matching the CSS selector.
func (s *Session) OuterHTMLAll(ctx context.Context, selector string) ([]string, error) {
	sel, _ := json.Marshal(selector)
	var out []string
	js := fmt.Sprintf(`Array.from(document.querySelectorAll(%s)).map(function(e) { return e.outerHTML; })`, sel)
	if err := s.run(ctx, s.cfg.WaitTimeout, chromedp.Evaluate(js, &out)); err != nil {
		return nil, fmt.Errorf("read %q: %w", selector, err)
	}
	return out, nil
}

// PageSource returns the current document's markup.
func (s *Session) PageSource(ctx context.Context) (string, error) {
	var src string
	if err := s.run(ctx, s.cfg.WaitTimeout, chromedp.OuterHTML("html", &src, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return src, nil
}

// CurrentURL returns the tab's current location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, s.cfg.WaitTimeout, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return url, nil
}

// ScrollIntoView scrolls the target element to the top of the viewport.
func (s *Session) ScrollIntoView(ctx context.Context, t Target) error {
	return s.act(ctx, "scroll", t)
}

// Click clicks the target from script, bypassing visibility and overlay checks.
func (s *Session) Click(ctx context.Context, t Target) error {
	return s.act(ctx, "click", t)
}

// Back goes one entry back in the tab's history.
func (s *Session) Back(ctx context.Context) error {
	if err := s.run(ctx, s.cfg.PageLoadTimeout, chromedp.NavigateBack()); err != nil {
		return fmt.Errorf("navigate back: %w", err)
	}
	return nil
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	var err error
	if s.ctx != nil {
		err = chromedp.Cancel(s.ctx)
		s.ctx = nil
	}
	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("browser: close: %w", err)
	}
	return nil
}

const targetJS = `(function(container, index, xpath, action) {
	var scope = document;
	if (container) {
		var list = document.querySelectorAll(container);
		if (index >= list.length) { return 'stale'; }
		scope = list[index];
	}
	var el = document.evaluate(xpath, scope, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) { return 'missing'; }
	if (action === 'scroll') { el.scrollIntoView(true); } else { el.click(); }
	return 'ok';
})(%s, %d, %s, %q)`

func (s *Session) act(ctx context.Context, action string, t Target) error {
	container, _ := json.Marshal(t.Container)
	xpath, _ := json.Marshal(t.XPath)
	js := fmt.Sprintf(targetJS, container, t.Index, xpath, action)

	var status string
	if err := s.run(ctx, s.cfg.WaitTimeout, chromedp.Evaluate(js, &status)); err != nil {
		if isDetached(err) {
			return fmt.Errorf("%s %s: %w", action, t.XPath, models.ErrStaleElement)
		}
		return fmt.Errorf("%s %s: %w", action, t.XPath, err)
	}

	switch status {
	case "ok":
		return nil
	case "stale":
		return fmt.Errorf("%s: %s[%d] no longer present: %w", action, t.Container, t.Index, models.ErrStaleElement)
	default:
		return fmt.Errorf("%s %s: %w", action, t.XPath, models.ErrElementNotFound)
	}
}

// run executes actions against the tab with a deadline, giving up early if
// the caller's ctx is cancelled.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if s.ctx == nil {
		return errors.New("browser: session closed")
	}
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", models.ErrTimeout, timeout)
	}
	return err
}

// isDetached matches the CDP errors raised when the document under a
// reference was replaced.
func isDetached(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "context was destroyed") ||
		strings.Contains(msg, "Cannot find context") ||
		strings.Contains(msg, "Could not find node")
}
