package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Login navigates to the login page, submits credentials, and verifies a
// logged-in state was reached.
func (p *Page) Login(ctx context.Context, username, password string) error {
	if err := p.Navigate(ctx, p.site.LoginPath); err != nil {
		return err
	}

	if err := p.fillFirst(ctx, p.selectors.LoginUsername, username); err != nil {
		return fmt.Errorf("%w: username field: %v", ErrLoginFailed, err)
	}
	if err := p.fillFirst(ctx, p.selectors.LoginPassword, password); err != nil {
		return fmt.Errorf("%w: password field: %v", ErrLoginFailed, err)
	}
	clicked, err := p.clickFirst(ctx, p.selectors.LoginSubmit)
	if err != nil || !clicked {
		return fmt.Errorf("%w: submit control: %v", ErrLoginFailed, err)
	}

	// The site redirects on success and re-renders the form with an error
	// marker on failure. Poll for either outcome.
	deadline := time.Now().Add(p.navTimeout)
	for {
		failed, err := p.exists(ctx, p.selectors.LoginFailure)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		if failed {
			return fmt.Errorf("%w: site rejected credentials", ErrLoginFailed)
		}
		location, err := p.CurrentURL(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		if !strings.Contains(location, p.site.LoginPath) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: still on login page", ErrLoginFailed)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// fillFirst types a value into the first matching input.
func (p *Page) fillFirst(ctx context.Context, selectors []string, value string) error {
	var lastErr error
	for _, selector := range selectors {
		found, err := p.exists(ctx, []string{selector})
		if err != nil {
			lastErr = err
			continue
		}
		if !found {
			continue
		}
		if err := p.run(ctx, p.stepTimeout,
			chromedp.Clear(selector, chromedp.ByQuery),
			chromedp.SendKeys(selector, value, chromedp.ByQuery),
		); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no matching input")
}
