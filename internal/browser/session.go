// Package browser drives the quiz site through a Chrome DevTools session.
// The markup is not under the project's control, so lookups go through
// selector fallback lists and every step carries a timeout and a capped
// retry budget.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"quizbot/internal/spec"
)

// Page is a logged-out browser tab bound to the quiz site.
type Page struct {
	ctx       context.Context
	cancels   []context.CancelFunc
	site      spec.SiteConfig
	selectors Selectors

	stepTimeout  time.Duration
	navTimeout   time.Duration
	clickRetries int
}

// NewPage starts a Chrome instance and opens a tab.
func NewPage(parent context.Context, browserCfg spec.BrowserConfig, siteCfg spec.SiteConfig) (*Page, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", browserCfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	if browserCfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(browserCfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	page := &Page{
		ctx:          tabCtx,
		cancels:      []context.CancelFunc{tabCancel, allocCancel},
		site:         siteCfg,
		selectors:    DefaultSelectors(),
		stepTimeout:  time.Duration(browserCfg.StepTimeoutSeconds) * time.Second,
		navTimeout:   time.Duration(browserCfg.NavTimeoutSeconds) * time.Second,
		clickRetries: browserCfg.ClickRetries,
	}
	// Start the browser eagerly so startup failures surface here.
	if err := page.run(parent, page.navTimeout, chromedp.Navigate("about:blank")); err != nil {
		page.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return page, nil
}

// Close shuts the tab and the browser down.
func (p *Page) Close() error {
	for _, cancel := range p.cancels {
		cancel()
	}
	return nil
}

// run executes chromedp actions on the tab with a timeout, honoring caller
// cancellation.
func (p *Page) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate opens a site path (or absolute URL) in the tab.
func (p *Page) Navigate(ctx context.Context, path string) error {
	target, err := p.resolveURL(path)
	if err != nil {
		return err
	}
	if err := p.run(ctx, p.navTimeout, chromedp.Navigate(target)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, target, err)
	}
	return nil
}

// resolveURL joins a path with the configured base URL.
func (p *Page) resolveURL(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	base, err := url.Parse(p.site.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// CurrentURL returns the tab's location.
func (p *Page) CurrentURL(ctx context.Context) (string, error) {
	var location string
	if err := p.run(ctx, p.stepTimeout, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return location, nil
}
