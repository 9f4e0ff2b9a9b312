package authwait

import "testing"

func TestIsReturnedExactHostMatch(t *testing.T) {
	if !isReturned("https://app.company.com/dashboard", "app.company.com", "company.com") {
		t.Fatal("expected exact host match to count as returned")
	}
}

func TestIsReturnedSameBaseDomainDifferentSubdomain(t *testing.T) {
	if !isReturned("https://mail.google.com/u/0/", "accounts.google.com", "google.com") {
		t.Fatal("expected same base domain to count as returned")
	}
}

func TestIsReturnedRelatedRootAboveLengthGuard(t *testing.T) {
	// Base domains differ (google.de vs google.com), but
	// root("google.de") == root("google.com") == "google", len 6 > 3.
	if !isReturned("https://www.google.de/u/0/", "login.microsoftonline.com", "google.com") {
		t.Fatal("expected related-root rule to count as returned")
	}
}

func TestIsReturnedRejectsShortRoot(t *testing.T) {
	// root("abc") == root("abc"), but len("abc") == 3 is not > the
	// 3-char length guard, so a shared 3-char root must NOT count as
	// related (spec §4.8's collision-avoidance clause).
	if isReturned("https://abc.org/path", "app.abc.com", "abc.com") {
		t.Fatal("expected a 3-char shared root to NOT count as returned")
	}
}

func TestIsReturnedRejectsAuthLikeLanding(t *testing.T) {
	if isReturned("https://app.company.com/login", "app.company.com", "company.com") {
		t.Fatal("an auth-like landing URL must never itself count as returned")
	}
}

func TestIsReturnedRejectsUnrelatedDomain(t *testing.T) {
	if isReturned("https://login.microsoftonline.com/oauth", "app.company.com", "company.com") {
		t.Fatal("unrelated domains must not count as returned")
	}
}

func TestIsReturnedHandlesMalformedURL(t *testing.T) {
	if isReturned("not a url at all://::", "app.company.com", "company.com") {
		t.Fatal("a malformed URL must not count as returned")
	}
}
