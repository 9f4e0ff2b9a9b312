// Package pagepool implements the per-hostname page pool (spec §3, §4.5):
// at most one live page per hostname, rebuilt on reattach, cleared on
// disconnect, re-keyed across redirects.
//
// The teacher's scraper.Scraper uses a fixed-capacity, slot-based
// rod.Pool[rod.Page] (see scraper/scraper.go) — a different shape, built
// for a stateless scrape-and-release workload. This pool instead keys
// by hostname because callers reuse the *same* tab across an
// authentication flow and subsequent interactions, which the teacher's
// pool was never meant to support.
package pagepool

import (
	"net/url"
	"strings"
	"sync"

	"github.com/go-rod/rod"
)

// internalPrefixes mark URLs that are excluded when reconstructing the pool
// from a browser's existing tabs (spec §3).
var internalPrefixes = []string{
	"about:blank",
	"chrome://",
	"chrome-extension://",
	"devtools://",
}

// Pool maps hostname to the page currently serving that host.
type Pool struct {
	mu    sync.Mutex
	pages map[string]*rod.Page
}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{pages: make(map[string]*rod.Page)}
}

// Acquire implements spec §4.5's acquire(host, reuse) algorithm.
// create is called (without the pool lock held) only when a fresh page
// must be made; fallback is called to pick any existing non-internal
// page when create fails.
func (p *Pool) Acquire(host string, reuse bool, create func() (*rod.Page, error), fallback func() (*rod.Page, bool)) (*rod.Page, error) {
	p.mu.Lock()
	if reuse {
		if page, ok := p.pages[host]; ok {
			if !isClosed(page) {
				p.mu.Unlock()
				_ = page.Activate() // best-effort bring-to-front
				p.mu.Lock()
				p.pages[host] = page
				p.mu.Unlock()
				return page, nil
			}
			delete(p.pages, host)
		}
	}
	p.mu.Unlock()

	page, err := create()
	if err != nil {
		if fallback != nil {
			if existing, ok := fallback(); ok {
				p.Put(host, existing)
				return existing, nil
			}
		}
		return nil, err
	}

	p.Put(host, page)
	return page, nil
}

// Put inserts page at host, replacing (not closing) any prior entry —
// the orchestrator decides separately whether the old page should close.
func (p *Pool) Put(host string, page *rod.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages[host] = page
}

// Get returns the page for host, if any live entry exists.
func (p *Pool) Get(host string) (*rod.Page, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	page, ok := p.pages[host]
	if ok && isClosed(page) {
		delete(p.pages, host)
		return nil, false
	}
	return page, ok
}

// Rekey moves the page stored at oldHost to newHost (spec §4.5: "the
// orchestrator deletes host and inserts the page at the new host").
// A no-op if oldHost has no entry.
func (p *Pool) Rekey(oldHost, newHost string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	page, ok := p.pages[oldHost]
	if !ok {
		return
	}
	delete(p.pages, oldHost)
	p.pages[newHost] = page
}

// Remove deletes the entry for host, if any.
func (p *Pool) Remove(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pages, host)
}

// FindByURL scans all entries for a page whose current URL exactly
// equals rawURL (spec §4.9 close_tab fallback: "handles tabs whose host
// changed after a redirect while the key did not").
func (p *Pool) FindByURL(rawURL string) (host string, page *rod.Page, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for h, pg := range p.pages {
		info, err := pg.Info()
		if err != nil {
			continue
		}
		if info.URL == rawURL {
			return h, pg, true
		}
	}
	return "", nil, false
}

// Clear empties the pool (spec §3: "on transport disconnect, the pool
// is fully cleared; stale handles must never be returned to callers").
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = make(map[string]*rod.Page)
}

// Reconstruct rebuilds the pool from a browser's currently open tabs
// (spec §3, §4.4): each tab whose URL parses to a non-internal scheme
// contributes hostname → page, first writer wins.
func (p *Pool) Reconstruct(browser *rod.Browser) error {
	pages, err := browser.Pages()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = make(map[string]*rod.Page)

	for _, page := range pages {
		info, err := page.Info()
		if err != nil {
			continue
		}
		if isInternalURL(info.URL) {
			continue
		}
		u, err := url.Parse(info.URL)
		if err != nil || u.Host == "" {
			continue
		}
		if _, exists := p.pages[u.Host]; exists {
			continue // first writer wins
		}
		p.pages[u.Host] = page
	}
	return nil
}

func isInternalURL(rawURL string) bool {
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	return false
}

// IsInternalURL reports whether rawURL is an internal browser page
// (about:blank, chrome://..., etc.) rather than user content — exported
// for callers outside this package that need to skip such tabs when
// picking a fallback page (spec §4.5).
func IsInternalURL(rawURL string) bool {
	return isInternalURL(rawURL)
}

func isClosed(page *rod.Page) bool {
	_, err := page.Info()
	return err != nil
}
