package sitetheme

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/tinge/colorspace"
)

// maxPerCategory caps each semantic category's color list.
const maxPerCategory = 5

// domColorsJS reads the effective rendered color of five fixed semantic
// categories. Each category is guarded separately, so one hostile or odd
// category degrades to an empty list without affecting the others. The raw
// computed values come back unnormalized; Go-side parsing drops what it
// cannot read.
const domColorsJS = `() => {
	const LIMIT = 24;
	const out = { logo: [], cta: [], navigation: [], headings: [], accent: [] };
	const transparent = (v) => !v || v === 'transparent' || v === 'rgba(0, 0, 0, 0)';
	const push = (list, v) => {
		if (!transparent(v) && list.length < LIMIT && !list.includes(v)) list.push(v);
	};
	const collect = (key, selectors, props) => {
		try {
			for (const sel of selectors) {
				for (const el of Array.from(document.querySelectorAll(sel)).slice(0, LIMIT)) {
					const cs = getComputedStyle(el);
					for (const p of props) push(out[key], cs[p]);
				}
			}
		} catch (e) {}
	};
	collect('logo',
		['header img', 'img[alt*="logo" i]', '[class*="logo" i]', 'svg[class*="logo" i]'],
		['backgroundColor', 'fill', 'color']);
	collect('cta',
		['button', '[class*="cta" i]', '[class*="btn" i]', 'a[class*="button" i]', 'input[type="submit"]'],
		['backgroundColor', 'color']);
	collect('navigation',
		['nav', 'header', '[role="navigation"]'],
		['backgroundColor']);
	collect('headings',
		['h1', 'h2', 'h3'],
		['color']);
	collect('accent',
		['[class*="accent" i]', '[class*="badge" i]', '[class*="highlight" i]', 'a'],
		['color', 'backgroundColor']);
	return JSON.stringify(out);
}`

// extractDOMColors correlates rendered colors with the five semantic
// categories. Best effort: any failure yields empty categories.
func extractDOMColors(ctx context.Context, page *rod.Page, log *slog.Logger) DOMColors {
	res, err := page.Context(ctx).Eval(domColorsJS)
	if err != nil {
		log.Debug("sitetheme: DOM color inspection failed", "error", err)
		return DOMColors{}
	}

	var raw struct {
		Logo       []string `json:"logo"`
		CTA        []string `json:"cta"`
		Navigation []string `json:"navigation"`
		Headings   []string `json:"headings"`
		Accent     []string `json:"accent"`
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &raw); err != nil {
		log.Debug("sitetheme: DOM color decode failed", "error", err)
		return DOMColors{}
	}

	return DOMColors{
		Logo:       normalizeCategory(raw.Logo),
		CTA:        normalizeCategory(raw.CTA),
		Navigation: normalizeCategory(raw.Navigation),
		Headings:   normalizeCategory(raw.Headings),
		Accent:     normalizeCategory(raw.Accent),
	}
}

// normalizeCategory converts raw computed values to hex, drops unparseable
// entries and deduplicates, keeping at most maxPerCategory.
func normalizeCategory(values []string) []string {
	out := make([]string, 0, maxPerCategory)
	seen := make(map[string]bool, maxPerCategory)
	for _, v := range values {
		hex, ok := colorspace.Normalize(v)
		if !ok || seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
		if len(out) == maxPerCategory {
			break
		}
	}
	return out
}
