package authcache

import "testing"

func TestMarkAndCheckRecentlyAuthenticated(t *testing.T) {
	c := New()
	if c.RecentlyAuthenticated("example.com") {
		t.Fatal("unmarked domain must not report recently authenticated")
	}
	c.MarkAuthenticated("example.com")
	if !c.RecentlyAuthenticated("example.com") {
		t.Fatal("marked domain must report recently authenticated")
	}
}

func TestRecentlyAuthenticatedIsPerDomain(t *testing.T) {
	c := New()
	c.MarkAuthenticated("example.com")
	if c.RecentlyAuthenticated("other.com") {
		t.Fatal("marking one domain must not affect another")
	}
}
