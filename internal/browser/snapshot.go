package browser

import (
	"fmt"
	"strings"
)

// Element is one visible interactive element found by dumpScript.
type Element struct {
	Tag      string `json:"tag"`
	Classes  string `json:"classes"`
	Text     string `json:"text"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
	InDialog bool   `json:"inDialog"`
}

// dumpScript collects visible interactive elements. It is an expression so
// both drivers can evaluate it.
const dumpScript = `(() => {
	const interactiveTags = new Set(['a', 'button', 'input', 'textarea', 'select', 'li']);

	function cleanText(text) {
		if (!text) return '';
		const res = text.replace(/\s+/g, ' ').trim();
		return res.length > 80 ? res.slice(0, 80) + '...' : res;
	}

	function isVisible(el) {
		if (!el || !el.getBoundingClientRect) return false;
		if (el.getAttribute('aria-hidden') === 'true') return false;
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' &&
			style.display !== 'none';
	}

	function isInteractive(el) {
		const role = (el.getAttribute('role') || '').toLowerCase();
		return interactiveTags.has(el.tagName.toLowerCase()) ||
			role === 'button' || role === 'textbox' || role === 'option' ||
			el.onclick != null;
	}

	function inDialog(el) {
		return !!el.closest('.ea-dialog-view, [role="dialog"], [aria-modal="true"]');
	}

	const out = [];
	for (const el of document.body.querySelectorAll('*')) {
		if (['script', 'style', 'svg', 'path', 'noscript'].includes(el.tagName.toLowerCase())) continue;
		if (!isInteractive(el) || !isVisible(el)) continue;
		out.push({
			tag: el.tagName.toLowerCase(),
			classes: typeof el.className === 'string' ? el.className.trim() : '',
			text: cleanText(el.innerText || el.getAttribute('aria-label') || el.getAttribute('placeholder') || ''),
			value: 'value' in el && typeof el.value === 'string' ? cleanText(el.value) : '',
			disabled: !!el.disabled,
			inDialog: inDialog(el),
		});
		if (out.length >= 500) break;
	}
	return out;
})()`

// FormatDump renders the elements one per line under a url/title header.
func FormatDump(url, title string, els []Element) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "URL: %s\nTitle: %s\nElements: %d\n", url, title, len(els))
	for i, el := range els {
		parts := []string{"<" + el.Tag}
		if el.Classes != "" {
			parts = append(parts, fmt.Sprintf("class=%q", el.Classes))
		}
		if el.Text != "" {
			parts = append(parts, fmt.Sprintf("label=%q", el.Text))
		}
		if el.Value != "" {
			parts = append(parts, fmt.Sprintf("value=%q", el.Value))
		}
		if el.Disabled {
			parts = append(parts, "disabled")
		}
		if el.InDialog {
			parts = append(parts, `context="dialog"`)
		}
		fmt.Fprintf(&sb, "[%d] %s>\n", i+1, strings.Join(parts, " "))
	}
	return sb.String()
}
