package sitetheme

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/tinge/colorspace"
)

// styleVarsJS collects every custom property declared on the root element:
// :root/html rules across same-origin stylesheets plus the documentElement
// inline style, in declaration order. Cross-origin sheets throw on cssRules
// access and are skipped. The whole walk is wrapped so a hostile page can at
// worst produce an empty list.
const styleVarsJS = `() => {
	const out = [];
	const seen = new Set();
	const add = (name, value) => {
		if (!seen.has(name)) {
			seen.add(name);
			out.push({ name: name, value: String(value).trim() });
		}
	};
	const isRootSel = (sel) => {
		if (!sel) return false;
		return sel.split(',').some((s) => {
			const t = s.trim().toLowerCase();
			return t === ':root' || t === 'html';
		});
	};
	try {
		for (const sheet of document.styleSheets) {
			let rules;
			try { rules = sheet.cssRules; } catch (e) { continue; }
			if (!rules) continue;
			for (const rule of rules) {
				if (!rule.style || !isRootSel(rule.selectorText)) continue;
				for (const prop of rule.style) {
					if (prop.startsWith('--')) add(prop, rule.style.getPropertyValue(prop));
				}
			}
		}
		const inline = document.documentElement.style;
		for (const prop of inline) {
			if (prop.startsWith('--')) add(prop, inline.getPropertyValue(prop));
		}
	} catch (e) {}
	return JSON.stringify(out);
}`

// extractStyleVars reads declared custom properties from the rendered page.
// This stage never fails: any error degrades to Found=false.
func extractStyleVars(ctx context.Context, page *rod.Page, log *slog.Logger) StyleVars {
	res, err := page.Context(ctx).Eval(styleVarsJS)
	if err != nil {
		log.Debug("sitetheme: style variable inspection failed", "error", err)
		return StyleVars{}
	}

	var vars []colorspace.Declared
	if err := json.Unmarshal([]byte(res.Value.Str()), &vars); err != nil {
		log.Debug("sitetheme: style variable decode failed", "error", err)
		return StyleVars{}
	}

	return StyleVars{Found: len(vars) > 0, Vars: vars}
}
