package palette

import (
	"sort"
	"strings"

	"github.com/hazyhaar/tinge/colorspace"
)

// priorityNames ranks style-variable names by how likely they are to carry
// brand identity. Matching is a case-insensitive substring test, so
// "--color-primary-500" ranks as "primary".
var priorityNames = []string{
	"primary",
	"secondary",
	"accent",
	"background",
	"foreground",
	"surface",
	"text",
	"border",
	"muted",
	"card",
}

// Prioritize ranks declared style variables by name, normalizes their values
// and returns an ordered hex list following the palette rules: unparseable
// entries dropped, case-insensitive dedup with the highest-priority
// occurrence winning, capped at MaxColors. Unmatched names keep their
// original relative order after all matched ones.
func Prioritize(vars []colorspace.Declared) []string {
	type entry struct {
		rank int // index into priorityNames, len(priorityNames) if unmatched
		hex  string
	}

	entries := make([]entry, 0, len(vars))
	for _, d := range vars {
		hex, ok := colorspace.Normalize(d.Value)
		if !ok {
			continue
		}
		entries = append(entries, entry{rank: nameRank(d.Name), hex: hex})
	}

	// Stable sort keeps the declaration order inside each rank, including
	// the unmatched tail.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rank < entries[j].rank
	})

	out := make(Palette, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		out = appendUnique(out, seen, e.hex)
	}
	return out
}

func nameRank(name string) int {
	n := strings.ToLower(name)
	for i, p := range priorityNames {
		if strings.Contains(n, p) {
			return i
		}
	}
	return len(priorityNames)
}
