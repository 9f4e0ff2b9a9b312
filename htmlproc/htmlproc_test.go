package htmlproc

import (
	"strings"
	"testing"
)

func TestCleanRemovesScriptsAndAttrs(t *testing.T) {
	in := `<html><body>
	<!-- a comment -->
	<script>alert(1)</script>
	<style>.a{color:red}</style>
	<meta charset="utf-8">
	<link rel="stylesheet" href="a.css">
	<div class="x" id="y" data-foo="1" onclick="bad()" role="button" aria-hidden="true">hello   world</div>
	</body></html>`

	out := Clean(in)

	for _, bad := range []string{"<script", "<style", "<meta", "<link", "class=", "id=", "data-foo", "onclick", "role=", "aria-hidden", "<!--"} {
		if strings.Contains(out, bad) {
			t.Errorf("Clean output still contains %q: %s", bad, out)
		}
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("Clean output lost visible text: %s", out)
	}
}

func TestCleanEmpty(t *testing.T) {
	if Clean("") != "" {
		t.Fatal("Clean(\"\") should be empty")
	}
	if Clean("   ") != "" {
		t.Fatal("Clean(whitespace) should be empty")
	}
}

func TestCleanIdempotent(t *testing.T) {
	in := `<div class="a"><p onclick="x()">hi</p></div>`
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Fatalf("Clean not idempotent:\nonce=%s\ntwice=%s", once, twice)
	}
}

func TestAbsolutizeRewritesRelative(t *testing.T) {
	in := `<a href="/page">link</a><img src="img/pic.png">`
	out := Absolutize(in, "https://example.com/dir/")

	if !strings.Contains(out, `href="https://example.com/page"`) {
		t.Errorf("href not absolutized: %s", out)
	}
	if !strings.Contains(out, `src="https://example.com/dir/img/pic.png"`) {
		t.Errorf("src not absolutized: %s", out)
	}
}

func TestAbsolutizeSkipsExcludedPrefixes(t *testing.T) {
	in := `<a href="https://other.com/x">a</a>` +
		`<a href="//cdn.example.com/y">b</a>` +
		`<a href="#section">c</a>` +
		`<a href="mailto:me@example.com">d</a>` +
		`<a href="tel:+15551234">e</a>` +
		`<img src="data:image/png;base64,AAAA">`

	out := Absolutize(in, "https://example.com/")

	for _, unchanged := range []string{
		`href="https://other.com/x"`,
		`href="//cdn.example.com/y"`,
		`href="#section"`,
		`href="mailto:me@example.com"`,
		`href="tel:+15551234"`,
		`src="data:image/png;base64,AAAA"`,
	} {
		if !strings.Contains(out, unchanged) {
			t.Errorf("expected unchanged value %q, got: %s", unchanged, out)
		}
	}
}

func TestAbsolutizeIdempotent(t *testing.T) {
	in := `<a href="/page">link</a>`
	base := "https://example.com/dir/"
	once := Absolutize(in, base)
	twice := Absolutize(once, base)
	if once != twice {
		t.Fatalf("Absolutize not idempotent:\nonce=%s\ntwice=%s", once, twice)
	}
}

func TestAbsolutizeEmpty(t *testing.T) {
	if Absolutize("", "https://example.com") != "" {
		t.Fatal("Absolutize(\"\", base) should be empty")
	}
}
