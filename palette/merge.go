package palette

// MergeVisionFirst builds a palette with screen-dominant colors as the
// primary brand evidence and style-variable colors layered in afterwards.
// Declared variables are frequently generic framework defaults, so when the
// visual signal is strong it outranks them.
//
// visual must already be ordered by descending area and grayscale-filtered;
// style must already be prioritized (see Prioritize).
func MergeVisionFirst(style []string, visual []VisualColor) Palette {
	out := make(Palette, 0, MaxColors)
	seen := make(map[string]bool, MaxColors)

	for _, v := range visual {
		out = appendUnique(out, seen, v.Hex)
	}
	for _, hex := range style {
		out = appendUnique(out, seen, hex)
	}
	return out
}

// MergeDOMFallback builds a palette with style-variable colors as the primary
// signal and DOM-correlated category colors as secondary enrichment. Used
// when the visual signal is too weak to trust.
//
// Category groups interleave round-robin (first color of every category, then
// second of every category, ...) so one color-rich category cannot crowd out
// the others.
func MergeDOMFallback(style []string, domGroups ...[]string) Palette {
	out := make(Palette, 0, MaxColors)
	seen := make(map[string]bool, MaxColors)

	for _, hex := range style {
		out = appendUnique(out, seen, hex)
	}

	for depth := 0; ; depth++ {
		any := false
		for _, group := range domGroups {
			if depth >= len(group) {
				continue
			}
			any = true
			out = appendUnique(out, seen, group[depth])
		}
		if !any {
			break
		}
	}
	return out
}
