package htmlproc

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skippedPrefixes are value prefixes that must never be rewritten,
// regardless of attribute.
var skippedPrefixes = []string{
	"http://", "https://", "//", "#", "mailto:", "tel:",
}

// Absolutize rewrites href= and src= values that are relative to
// absolute URLs against base. Values beginning with an entry in
// skippedPrefixes (and, for src, "data:") are left untouched.
// Unparseable values and an unparseable base are left as-is.
// Absolutize is idempotent: Absolutize(Absolutize(h, b), b) == Absolutize(h, b).
func Absolutize(rawHTML, base string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return rawHTML
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return rawHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	doc.Find("[href], [src]").Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		for i, a := range node.Attr {
			if a.Key != "href" && a.Key != "src" {
				continue
			}
			if shouldSkipRewrite(a.Key, a.Val) {
				continue
			}
			if resolved, ok := resolveAgainst(baseURL, a.Val); ok {
				node.Attr[i].Val = resolved
			}
		}
	})

	out, err := doc.Html()
	if err != nil {
		return rawHTML
	}
	return out
}

func shouldSkipRewrite(attr, value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if attr == "src" && strings.HasPrefix(lower, "data:") {
		return true
	}
	return false
}

func resolveAgainst(base *url.URL, ref string) (string, bool) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(refURL).String(), true
}
