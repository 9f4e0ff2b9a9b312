// Package authwait implements the auto-auth and manual-auth wait loops
// (spec §4.8): a shared related-domain predicate, a fast 5s auto-auth
// poll, and a 10-minute manual-auth poll.
package authwait

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/use-agent/browserbridge/authcache"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/urlinfo"
)

const (
	autoAuthTimeout    = 5 * time.Second
	autoAuthInterval   = 500 * time.Millisecond
	manualAuthTimeout  = 10 * time.Minute
	manualAuthInterval = 2 * time.Second

	// shortRootLen is the length guard in spec §4.8: a root must be
	// longer than this to be treated as "related"; roots of this length
	// or shorter are too collision-prone.
	shortRootLen = 3
)

// isReturned implements the shared related-domain predicate (spec
// §4.8): U counts as "returned" when it isn't itself auth-like, and
// either its host matches exactly, its base domain matches, or its
// base domain's root matches the original's root and that root is
// longer than shortRootLen.
func isReturned(currentURL, originalHost, originalBase string) bool {
	if urlinfo.IsAuthLike(currentURL) {
		return false
	}
	u, err := url.Parse(currentURL)
	if err != nil {
		return false
	}
	if u.Host == originalHost {
		return true
	}
	currentBase := urlinfo.BaseDomain(u.Host)
	if currentBase == originalBase {
		return true
	}
	root := urlinfo.Root(currentBase)
	originalRoot := urlinfo.Root(originalBase)
	return root == originalRoot && len(originalRoot) > shortRootLen
}

// currentPageURL reads the page's live URL, swallowing transient errors
// by returning ok=false rather than propagating — both loops must keep
// polling through a momentary read failure (spec §4.8).
func currentPageURL(page *rod.Page) (string, bool) {
	info, err := page.Info()
	if err != nil {
		return "", false
	}
	return info.URL, true
}

// AutoAuth polls the page URL every 500ms until the related-domain
// predicate holds or 5s elapses. Returns the landing host and true on
// success; on timeout it fails silently (ok=false, no error) so the
// orchestrator can fall through to ManualAuth.
func AutoAuth(ctx context.Context, page *rod.Page, originalHost, originalBase string, cache *authcache.Cache) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, autoAuthTimeout)
	defer cancel()

	check := func() (string, bool) {
		currentURL, ok := currentPageURL(page)
		if !ok {
			return "", false
		}
		if !isReturned(currentURL, originalHost, originalBase) {
			return "", false
		}
		u, err := url.Parse(currentURL)
		if err != nil {
			return "", false
		}
		return u.Host, true
	}

	// A base domain that recently completed auth is likely to resolve
	// on the very first observation; check immediately either way
	// (the loop always does), but log the expectation for operators.
	if cache != nil && cache.RecentlyAuthenticated(originalBase) {
		slog.Debug("auto_auth: base domain recently authenticated, expecting fast completion", "base", originalBase)
	}

	if host, ok := check(); ok {
		if cache != nil {
			cache.MarkAuthenticated(originalBase)
		}
		return host, true
	}

	ticker := time.NewTicker(autoAuthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-ticker.C:
			if host, ok := check(); ok {
				if cache != nil {
					cache.MarkAuthenticated(originalBase)
				}
				return host, true
			}
		}
	}
}

// ManualAuth polls the page URL every 2s for up to 10 minutes. On
// timeout it returns a CodeAuthTimeout error naming the tab's current
// URL and instructing the caller to complete authentication and retry;
// the tab is intentionally left open by the caller.
func ManualAuth(ctx context.Context, page *rod.Page, originalHost, originalBase string, cache *authcache.Cache) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, manualAuthTimeout)
	defer cancel()

	ticker := time.NewTicker(manualAuthInterval)
	defer ticker.Stop()

	var lastKnownURL string

	for {
		if currentURL, ok := currentPageURL(page); ok {
			lastKnownURL = currentURL
			if isReturned(currentURL, originalHost, originalBase) {
				if cache != nil {
					cache.MarkAuthenticated(originalBase)
				}
				u, err := url.Parse(currentURL)
				if err == nil {
					return u.Host, nil
				}
			}
		}

		select {
		case <-ctx.Done():
			return "", berrors.New(berrors.CodeAuthTimeout,
				fmt.Sprintf("authentication was not completed in time; current tab URL is %q", lastKnownURL),
				"complete authentication in the open tab, then retry the same URL",
			)
		case <-ticker.C:
		}
	}
}
