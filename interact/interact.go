// Package interact implements the interaction tools (spec §4.9): click,
// type, get_current_html and close_tab, all operating against a page
// already held open in the pagepool.
//
// Grounded on the teacher's scraper/actions.go (element-wait-then-act
// idiom, element resolution by selector) generalized to the spec's
// second resolution path — resolve by visible text when no selector is
// given — which the teacher never needed because its actions always
// took a caller-supplied selector.
package interact

import (
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/htmlproc"
	"github.com/use-agent/browserbridge/navigate"
	"github.com/use-agent/browserbridge/pagepool"
)

const (
	// DefaultClickElementWait is click_element's default element-wait
	// timeout (spec §4.9).
	DefaultClickElementWait = 1000 * time.Millisecond
	// DefaultTypeElementWait is type_text's default element-wait timeout
	// (spec §4.9).
	DefaultTypeElementWait = 5000 * time.Millisecond
	// DefaultTypeDelay is the default per-keystroke delay for type_text
	// (spec §4.9).
	DefaultTypeDelay = 50 * time.Millisecond
	// DefaultPostClickWait and DefaultPostTypeWait are the default
	// settle waits applied after stabilization (spec §4.9).
	DefaultPostClickWait = 1000 * time.Millisecond
	DefaultPostTypeWait  = 1000 * time.Millisecond
)

// Result is the shared shape returned by every interaction: the page's
// URL after the interaction settled, and HTML when the caller asked
// for it back.
type Result struct {
	CurrentURL string
	HTML       string
}

// resolve looks up the pool entry for rawURL's host and fails with
// CodeNoActivePage if none exists (spec §4.9: every interaction tool
// requires a tab already opened by fetch_webpage).
func resolve(pool *pagepool.Pool, rawURL string) (*rod.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, berrors.InvalidArgument("url", "must be an absolute URL")
	}
	page, ok := pool.Get(u.Host)
	if !ok {
		return nil, berrors.NoActivePage(u.Host)
	}
	return page, nil
}

// locate resolves the target element: by CSS selector when given,
// otherwise by the smallest visible element whose trimmed text
// contains text (spec §4.9).
func locate(page *rod.Page, selector, text string, elementWaitTimeout time.Duration) (*rod.Element, error) {
	if selector != "" {
		return findBySelector(page, selector, elementWaitTimeout)
	}
	return findByText(page, text, elementWaitTimeout)
}

// Click finds the target element (by selector or by visible text),
// scrolls it into view, clicks it, waits for the page to stabilize,
// then sleeps postWait before reporting back (spec §4.9).
func Click(pool *pagepool.Pool, rawURL, selector, text string, elementWaitTimeout, postWait time.Duration, returnHTML, clean bool) (*Result, error) {
	page, err := resolve(pool, rawURL)
	if err != nil {
		return nil, err
	}

	el, err := locate(page, selector, text, elementWaitTimeout)
	if err != nil {
		return nil, err
	}

	if err := el.ScrollIntoView(); err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to scroll element into view", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "click failed", err)
	}

	navigate.WaitStable(page)
	time.Sleep(postWait)
	return finish(page, returnHTML, clean)
}

// Type finds the target element, optionally clears its existing
// value, types text character-by-character with typeDelay between
// keystrokes, waits for the page to stabilize, then sleeps postWait
// before reporting back (spec §4.9).
func Type(pool *pagepool.Pool, rawURL, selector, text string, clearFirst, returnHTML, clean bool, elementWaitTimeout, typeDelay, postWait time.Duration) (*Result, error) {
	page, err := resolve(pool, rawURL)
	if err != nil {
		return nil, err
	}

	el, err := locate(page, selector, "", elementWaitTimeout)
	if err != nil {
		return nil, err
	}

	if err := el.ScrollIntoView(); err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to scroll element into view", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "focus click failed", err)
	}

	if clearFirst {
		// Triple-click selects the field's full contents (spec §4.9),
		// then Backspace clears it.
		if err := el.Click(proto.InputMouseButtonLeft, 3); err != nil {
			return nil, berrors.Wrap(berrors.CodeInternal, "failed to select existing text", err)
		}
		if err := page.Keyboard.Type(input.Backspace); err != nil {
			return nil, berrors.Wrap(berrors.CodeInternal, "failed to clear existing text", err)
		}
	}

	for _, r := range text {
		if err := el.Input(string(r)); err != nil {
			return nil, berrors.Wrap(berrors.CodeInternal, "typing failed", err)
		}
		time.Sleep(typeDelay)
	}

	navigate.WaitStable(page)
	time.Sleep(postWait)
	return finish(page, returnHTML, clean)
}

// GetCurrentHTML returns the pooled page's live HTML without driving
// any interaction (spec §4.9).
func GetCurrentHTML(pool *pagepool.Pool, rawURL string, clean bool) (*Result, error) {
	page, err := resolve(pool, rawURL)
	if err != nil {
		return nil, err
	}
	return finish(page, true, clean)
}

// CloseTab closes the page serving rawURL's host, falling back to a
// full-URL scan (spec §4.9, §4.5 FindByURL) for tabs whose host
// changed under a redirect while the pool key did not follow. Returns
// the hostname of the closed entry, or "" with found=false when no
// matching tab exists — spec §4.9 treats that as a success ("no tab
// found"), not an error.
func CloseTab(pool *pagepool.Pool, rawURL string) (hostname string, found bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false, berrors.InvalidArgument("url", "must be an absolute URL")
	}

	if page, ok := pool.Get(u.Host); ok {
		pool.Remove(u.Host)
		return u.Host, true, closeQuietly(page)
	}

	if host, page, ok := pool.FindByURL(rawURL); ok {
		pool.Remove(host)
		return host, true, closeQuietly(page)
	}

	return "", false, nil
}

func closeQuietly(page *rod.Page) error {
	if err := page.Close(); err != nil {
		return berrors.Wrap(berrors.CodeInternal, "failed to close tab", err)
	}
	return nil
}

// finish reads back the page's current URL and, when requested, its
// processed HTML — the common tail of every interaction tool.
func finish(page *rod.Page, returnHTML, clean bool) (*Result, error) {
	info, err := page.Info()
	if err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to read page info after interaction", err)
	}

	result := &Result{CurrentURL: info.URL}
	if !returnHTML {
		return result, nil
	}

	raw, err := page.HTML()
	if err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to read page HTML after interaction", err)
	}
	result.HTML = htmlproc.Process(raw, info.URL, clean)
	return result, nil
}
