// Package urlinfo implements the URL classifier (spec §4.1): extracting
// a registrable base domain and recognizing auth-like URLs.
package urlinfo

import (
	"net/url"
	"regexp"
	"strings"
)

// authPathPatterns matches an auth-like path segment bounded by "/" on
// both sides (or string end), so "/login-help" does not match "/login"
// even though "-" is a regexp \b word boundary.
var authPathPatterns = regexp.MustCompile(
	`(?i)/(login|signin|sign-in|auth|authenticate|sso|oauth|saml)(/|$)`,
)

// authHostPrefixes are host labels that, followed by a dot, mark a URL
// as auth-like regardless of path.
var authHostPrefixes = []string{
	"login.", "auth.", "signin.", "sso.", "oauth.",
	"accounts.", "id.", "identity.", "authentication.", "idp.",
}

// BaseDomain returns the last two dot-labels of host, or host itself if
// it has fewer than two labels. Deliberately not public-suffix-aware:
// this is the exact, testable rule from spec §4.1/§8, not a registrable
// domain lookup (see DESIGN.md Open Question 3).
func BaseDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// IsAuthLike reports whether rawURL looks like an authentication page,
// by path pattern or host prefix, per spec §4.1. An unparseable URL
// yields false.
func IsAuthLike(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.EscapedPath())

	if authPathPatterns.MatchString(path) {
		return true
	}
	for _, prefix := range authHostPrefixes {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}
	return false
}

// Root returns the first dot-label of a domain, e.g. Root("google.com") == "google".
func Root(domain string) string {
	if i := strings.IndexByte(domain, '.'); i >= 0 {
		return domain[:i]
	}
	return domain
}
