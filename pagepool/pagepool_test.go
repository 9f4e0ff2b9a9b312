package pagepool

import "testing"

// isInternalURL and New/Rekey/Remove's bookkeeping are the only pieces
// testable without a live *rod.Page (Acquire/Get/FindByURL all call
// methods on *rod.Page to check liveness, which requires a real CDP
// connection and is exercised at the integration level instead).

func TestIsInternalURL(t *testing.T) {
	cases := map[string]bool{
		"about:blank":                    true,
		"chrome://settings":              true,
		"chrome-extension://abc/page.js": true,
		"devtools://devtools/bundled/x":  true,
		"https://example.com/":           false,
		"":                               false,
	}
	for url, want := range cases {
		if got := isInternalURL(url); got != want {
			t.Errorf("isInternalURL(%q) = %v, want %v", url, got, want)
		}
	}
}

func TestRekeyNoOpWhenOldHostAbsent(t *testing.T) {
	p := New()
	p.Rekey("missing.example.com", "new.example.com")
	if _, ok := p.Get("new.example.com"); ok {
		t.Fatal("Rekey must not create an entry when the old host has none")
	}
}

func TestRemoveOnEmptyPoolIsNoOp(t *testing.T) {
	p := New()
	p.Remove("example.com") // must not panic
}

func TestClearEmptiesPool(t *testing.T) {
	p := New()
	p.Clear()
	if _, ok := p.Get("example.com"); ok {
		t.Fatal("freshly cleared pool must have no entries")
	}
}
