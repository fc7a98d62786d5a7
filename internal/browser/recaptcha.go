package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// FindCaptcha discovers the reCAPTCHA widget on the current page and
// returns the page URL plus the site key. Discovery order: widget element
// attributes, then captcha iframe URLs across all frames, then the
// configured fallback key.
func (p *Page) FindCaptcha(ctx context.Context) (string, string, error) {
	pageURL, err := p.CurrentURL(ctx)
	if err != nil {
		return "", "", err
	}

	if key, err := p.siteKeyFromDOM(ctx); err == nil && key != "" {
		return pageURL, key, nil
	}

	urls, err := p.frameURLs(ctx)
	if err == nil {
		for _, frameURL := range urls {
			if key, ok := siteKeyFromFrameURL(frameURL); ok {
				return pageURL, key, nil
			}
		}
	}

	if fallback := strings.TrimSpace(p.site.FallbackSiteKey); fallback != "" {
		return pageURL, fallback, nil
	}
	return "", "", ErrCaptchaNotFound
}

// siteKeyFromDOM reads the widget's data-sitekey attribute.
func (p *Page) siteKeyFromDOM(ctx context.Context) (string, error) {
	const script = `(() => {
		const el = document.querySelector('.g-recaptcha[data-sitekey], [data-sitekey]');
		return el ? el.getAttribute('data-sitekey') : "";
	})()`
	var key string
	if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &key)); err != nil {
		return "", fmt.Errorf("probe sitekey: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// frameURLs collects the URLs of every frame in the page tree.
func (p *Page) frameURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := p.run(ctx, p.stepTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := cdppage.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		urls = collectFrameURLs(tree)
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("frame tree: %w", err)
	}
	return urls, nil
}

// collectFrameURLs flattens a frame tree into its frame URLs.
func collectFrameURLs(tree *cdppage.FrameTree) []string {
	if tree == nil {
		return nil
	}
	urls := []string{}
	if tree.Frame != nil {
		urls = append(urls, tree.Frame.URL)
	}
	for _, child := range tree.ChildFrames {
		urls = append(urls, collectFrameURLs(child)...)
	}
	return urls
}

// siteKeyFromFrameURL extracts the k= parameter from a captcha iframe URL.
func siteKeyFromFrameURL(frameURL string) (string, bool) {
	if !strings.Contains(frameURL, "recaptcha") {
		return "", false
	}
	parsed, err := url.Parse(frameURL)
	if err != nil {
		return "", false
	}
	key := parsed.Query().Get("k")
	if key == "" {
		return "", false
	}
	return key, true
}

// InjectCaptchaToken writes a solved token into the hidden response field
// and fires the widget callback when one is registered.
func (p *Page) InjectCaptchaToken(ctx context.Context, token string) error {
	script := fmt.Sprintf(`(() => {
		const token = %s;
		let field = document.querySelector('textarea[name="g-recaptcha-response"], #g-recaptcha-response');
		if (!field) {
			field = document.createElement("textarea");
			field.name = "g-recaptcha-response";
			field.style.display = "none";
			document.body.appendChild(field);
		}
		field.value = token;
		const cfg = window.___grecaptcha_cfg;
		if (cfg && cfg.clients) {
			for (const client of Object.values(cfg.clients)) {
				for (const branch of Object.values(client)) {
					if (branch && typeof branch === "object") {
						for (const leaf of Object.values(branch)) {
							if (leaf && typeof leaf.callback === "function") {
								leaf.callback(token);
								return true;
							}
						}
					}
				}
			}
		}
		return true;
	})()`, jsArg(token))
	var injected bool
	if err := p.run(ctx, p.stepTimeout, chromedp.Evaluate(script, &injected)); err != nil {
		return fmt.Errorf("inject token: %w", err)
	}
	return nil
}
