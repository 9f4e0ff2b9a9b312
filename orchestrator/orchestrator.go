// Package orchestrator implements the fetch orchestrator (spec §4.11):
// the single composition point that turns a URL into a live, possibly
// authenticated tab and its processed HTML, driving C4-C8 (browser,
// pagepool, navigate, redirect, authwait) and C2 (htmlproc).
//
// Grounded on the teacher's engine/rod_engine.go Scrape method, which
// composes the teacher's own navigate+wait+extract steps end to end;
// this package generalizes that composition with the redirect/auth
// branch spec.md §4.11 requires and the teacher's single-shot scrape
// never needed.
package orchestrator

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/browserbridge/authcache"
	"github.com/use-agent/browserbridge/authwait"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/browser"
	"github.com/use-agent/browserbridge/htmlproc"
	"github.com/use-agent/browserbridge/navigate"
	"github.com/use-agent/browserbridge/pagepool"
	"github.com/use-agent/browserbridge/redirect"
	"github.com/use-agent/browserbridge/urlinfo"
)

// NextSteps is the fixed suggestion list attached to every successful
// fetch/interaction result (spec §4.11 step 7, §6).
var NextSteps = []string{
	"use click_element or type_text to interact with the page",
	"use get_current_html to re-read the page without navigating again",
	"use close_tab when you are done with this page",
}

// FetchResult is the orchestrator's success output (spec §3 FetchResult).
type FetchResult struct {
	CurrentURL string
	HTML       string
}

// Orchestrator composes the session, pool, and auth cache into the
// single-actor fetch algorithm. The mutex enforces spec §5's "single
// logical actor per browser process": FetchWebpage calls are serialized
// even if the caller invokes it from multiple goroutines.
type Orchestrator struct {
	mu      sync.Mutex
	session *browser.Session
	pool    *pagepool.Pool
	cache   *authcache.Cache
}

// New creates an Orchestrator over an already-constructed session and
// pool.
func New(session *browser.Session, pool *pagepool.Pool, cache *authcache.Cache) *Orchestrator {
	return &Orchestrator{session: session, pool: pool, cache: cache}
}

// FetchWebpage implements spec §4.11's seven-step algorithm.
func (o *Orchestrator) FetchWebpage(ctx context.Context, rawURL string, cleanHTML bool, postLoadWait time.Duration) (*FetchResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, berrors.InvalidArgument("url", "must be an absolute URL")
	}
	host := u.Host

	b, err := o.session.Browser(ctx)
	if err != nil {
		return nil, err
	}

	page, err := o.acquirePage(b, host)
	if err != nil {
		return nil, err
	}

	if err := navigate.Navigate(page, rawURL); err != nil {
		return nil, err
	}

	landingURL, err := currentURL(page)
	if err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to read landing URL after navigation", err)
	}
	landingHost := hostOf(landingURL)

	verdict := redirect.Classify(rawURL, host, landingURL, landingHost)

	switch verdict.Kind {
	case redirect.KindNone:
		// proceed as-is

	case redirect.KindRequestedAuth:
		if landingHost != host {
			o.pool.Rekey(host, landingHost)
		}

	case redirect.KindPermanent:
		o.pool.Rekey(host, verdict.NewHost)

	case redirect.KindAuth:
		originalBase := urlinfo.BaseDomain(host)
		finalHost, err := o.runAuthFlow(ctx, page, host, originalBase)
		if err != nil {
			// Tab stays open per spec §4.11/§7; caller retries the URL.
			return nil, err
		}
		if finalHost != host {
			o.pool.Rekey(host, finalHost)
		}
		navigate.WaitStable(page)
	}

	time.Sleep(postLoadWait)

	raw, err := page.HTML()
	if err != nil {
		return nil, berrors.Wrap(berrors.CodeInternal, "failed to read page HTML", err)
	}

	finalURL, err := currentURL(page)
	if err != nil {
		finalURL = landingURL
	}

	return &FetchResult{
		CurrentURL: finalURL,
		HTML:       htmlproc.Process(raw, finalURL, cleanHTML),
	}, nil
}

// acquirePage implements spec §4.5 acquire(host, reuse=true): reuse a
// live pool entry, else open a fresh tab, falling back to any existing
// non-internal tab if opening a fresh one fails.
func (o *Orchestrator) acquirePage(b *rod.Browser, host string) (*rod.Page, error) {
	create := func() (*rod.Page, error) {
		page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return nil, berrors.Wrap(berrors.CodeTransport, "failed to open a new tab", err)
		}
		// A tab we open ourselves gets the same anti-automation masking
		// the teacher injects before its own scrapes (scraper/page.go);
		// a tab we merely attach to (the fallback path) is one the user
		// already owns and is left untouched. Injection failure is not
		// fatal, matching the teacher: fetching without stealth still
		// beats failing the whole request over it.
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without it", "error", err)
		}
		return page, nil
	}

	fallback := func() (*rod.Page, bool) {
		pages, err := b.Pages()
		if err != nil {
			return nil, false
		}
		for _, p := range pages {
			if info, err := p.Info(); err == nil && !pagepool.IsInternalURL(info.URL) {
				return p, true
			}
		}
		return nil, false
	}

	return o.pool.Acquire(host, true, create, fallback)
}

// runAuthFlow runs auto_auth then, on failure, manual_auth (spec
// §4.11 step 5 / §4.8).
func (o *Orchestrator) runAuthFlow(ctx context.Context, page *rod.Page, originalHost, originalBase string) (string, error) {
	if host, ok := authwait.AutoAuth(ctx, page, originalHost, originalBase, o.cache); ok {
		return host, nil
	}
	return authwait.ManualAuth(ctx, page, originalHost, originalBase, o.cache)
}

func currentURL(page *rod.Page) (string, error) {
	info, err := page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
