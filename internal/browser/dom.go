package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// jsArg encodes a Go string as a JavaScript string literal.
func jsArg(value string) string {
	encoded, _ := json.Marshal(value)
	return string(encoded)
}

// jsArgs encodes a Go string slice as a JavaScript array literal.
func jsArgs(values []string) string {
	encoded, _ := json.Marshal(values)
	return string(encoded)
}

// probeText returns the trimmed text of the first selector that matches, or
// "" when none do.
func (p *Page) probeText(ctx context.Context, selectors []string) (string, error) {
	script := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			const el = document.querySelector(sel);
			if (el && el.textContent.trim() !== "") {
				return el.textContent.trim();
			}
		}
		return "";
	})()`, jsArgs(selectors))
	var text string
	if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &text)); err != nil {
		return "", fmt.Errorf("probe text: %w", err)
	}
	return text, nil
}

// probeTexts returns the trimmed texts of all elements matched by the first
// selector that matches anything.
func (p *Page) probeTexts(ctx context.Context, selectors []string) ([]string, error) {
	script := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			const els = Array.from(document.querySelectorAll(sel));
			const texts = els.map(el => el.textContent.trim()).filter(t => t !== "");
			if (texts.length > 0) {
				return texts;
			}
		}
		return [];
	})()`, jsArgs(selectors))
	var texts []string
	if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, fmt.Errorf("probe texts: %w", err)
	}
	return texts, nil
}

// exists reports whether any of the selectors matches an element.
func (p *Page) exists(ctx context.Context, selectors []string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			if (document.querySelector(sel)) {
				return true;
			}
		}
		return false;
	})()`, jsArgs(selectors))
	var found bool
	if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &found)); err != nil {
		return false, fmt.Errorf("probe selector: %w", err)
	}
	return found, nil
}

// clickFirst clicks the first element matched by the selector list,
// retrying up to the configured click budget.
func (p *Page) clickFirst(ctx context.Context, selectors []string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			const el = document.querySelector(sel);
			if (el) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, jsArgs(selectors))
	return p.clickRetry(ctx, script)
}

// clickByText clicks the element among the selector matches whose trimmed
// text equals the wanted option, retrying on transient misses.
func (p *Page) clickByText(ctx context.Context, selectors []string, text string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		for (const sel of %s) {
			for (const el of document.querySelectorAll(sel)) {
				if (el.textContent.trim() === %s) {
					el.click();
					return true;
				}
			}
		}
		return false;
	})()`, jsArgs(selectors), jsArg(text))
	return p.clickRetry(ctx, script)
}

// clickRetry evaluates a click script until it reports success or the retry
// budget is spent. Retries cover re-rendered options and late listeners.
func (p *Page) clickRetry(ctx context.Context, script string) (bool, error) {
	retries := p.clickRetries
	if retries <= 0 {
		retries = 1
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
		var clicked bool
		if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &clicked)); err != nil {
			lastErr = err
			continue
		}
		if clicked {
			return true, nil
		}
	}
	if lastErr != nil {
		return false, fmt.Errorf("click: %w", lastErr)
	}
	return false, nil
}

// waitText polls the selectors until one yields text or the step timeout
// elapses. Returns "" without error when nothing appears; the caller
// decides whether absence means completion or failure.
func (p *Page) waitText(ctx context.Context, selectors []string) (string, error) {
	deadline := time.Now().Add(p.stepTimeout)
	for {
		text, err := p.probeText(ctx, selectors)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		if time.Now().After(deadline) {
			return "", nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
}
