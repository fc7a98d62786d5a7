package browser

import (
	"testing"

	"github.com/chromedp/cdproto/cdp"
	cdppage "github.com/chromedp/cdproto/page"
)

// TestSiteKeyFromFrameURL verifies k= extraction from captcha iframe URLs.
func TestSiteKeyFromFrameURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.google.com/recaptcha/api2/anchor?ar=1&k=6LcKey&co=aHR0", "6LcKey", true},
		{"https://www.google.com/recaptcha/enterprise/anchor?k=6LdOther", "6LdOther", true},
		{"https://www.google.com/recaptcha/api2/anchor?ar=1", "", false},
		{"https://example.test/page?k=notacaptcha", "", false},
		{"://bad-url", "", false},
	}
	for _, tc := range cases {
		got, ok := siteKeyFromFrameURL(tc.url)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("siteKeyFromFrameURL(%q) = %q, %v; want %q, %v", tc.url, got, ok, tc.want, tc.ok)
		}
	}
}

// TestCollectFrameURLs verifies the frame tree walk.
func TestCollectFrameURLs(t *testing.T) {
	tree := &cdppage.FrameTree{
		Frame: &cdp.Frame{URL: "https://example.test/claim"},
		ChildFrames: []*cdppage.FrameTree{
			{Frame: &cdp.Frame{URL: "https://www.google.com/recaptcha/api2/anchor?k=6LcKey"}},
			{
				Frame: &cdp.Frame{URL: "https://example.test/ad"},
				ChildFrames: []*cdppage.FrameTree{
					{Frame: &cdp.Frame{URL: "https://example.test/nested"}},
				},
			},
		},
	}
	urls := collectFrameURLs(tree)
	if len(urls) != 4 {
		t.Fatalf("expected 4 urls, got %v", urls)
	}
	if urls[1] != "https://www.google.com/recaptcha/api2/anchor?k=6LcKey" {
		t.Fatalf("unexpected order: %v", urls)
	}
	if collectFrameURLs(nil) != nil {
		t.Fatalf("nil tree should yield nil")
	}
}

// TestJSArg verifies JS string literal encoding.
func TestJSArg(t *testing.T) {
	if got := jsArg(`he said "hi"`); got != `"he said \"hi\""` {
		t.Fatalf("unexpected encoding %s", got)
	}
	if got := jsArgs([]string{"a", "b"}); got != `["a","b"]` {
		t.Fatalf("unexpected encoding %s", got)
	}
}
