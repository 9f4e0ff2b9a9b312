package interact

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/use-agent/browserbridge/berrors"
)

// findBySelector waits up to timeout for a visible element matching
// selector (spec §4.9).
func findBySelector(page *rod.Page, selector string, timeout time.Duration) (*rod.Element, error) {
	p := page.Timeout(timeout)
	el, err := p.Element(selector)
	if err != nil {
		return nil, berrors.Wrap(berrors.CodeElementNotFound,
			fmt.Sprintf("selector %q did not resolve within %s", selector, timeout), err)
	}
	if err := el.WaitVisible(); err != nil {
		return nil, berrors.Wrap(berrors.CodeElementNotFound,
			fmt.Sprintf("selector %q did not become visible within %s", selector, timeout), err)
	}
	return el, nil
}

// findByText waits up to timeout for any visible element whose trimmed
// textContent contains text, then returns the smallest such element
// (shortest textContent) to prefer the most specific match (spec §4.9).
func findByText(page *rod.Page, text string, timeout time.Duration) (*rod.Element, error) {
	p := page.Timeout(timeout)

	const findSmallestVisibleJS = `(needle) => {
		let best = null;
		let bestLen = Infinity;
		const all = document.querySelectorAll('*');
		for (const el of all) {
			const style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden') continue;
			const rect = el.getBoundingClientRect();
			if (rect.width === 0 || rect.height === 0) continue;
			const t = (el.textContent || '').trim();
			if (!t || !t.includes(needle)) continue;
			if (t.length < bestLen) {
				bestLen = t.length;
				best = el;
			}
		}
		return best;
	}`

	deadline := time.Now().Add(timeout)
	for {
		obj, err := p.Evaluate(rod.Eval(findSmallestVisibleJS, text).ByObject())
		if err == nil {
			if el, convErr := p.ElementFromObject(obj); convErr == nil && el != nil {
				return el, nil
			}
		}
		if time.Now().After(deadline) {
			return nil, berrors.New(berrors.CodeElementNotFound,
				fmt.Sprintf("no visible element containing %q within %s", text, timeout))
		}
		time.Sleep(100 * time.Millisecond)
	}
}
