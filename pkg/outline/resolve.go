package outline

import "fmt"

// EnsureUniqueIDs resolves identifier collisions across a flat sequence.
//
// Headings are processed in order with a counter keyed by the ORIGINAL
// identifier as extracted or generated, never the suffixed output. The first
// occurrence keeps its identifier; the n-th repeat gets a "-{n}" suffix. Three
// headings sharing the base "intro" therefore resolve to "intro", "intro-1",
// "intro-2" — never "intro-1-1".
//
// The counter map is local to the call, so concurrent invocations on
// different sequences are independent. The input slice is not mutated; a new
// slice is returned with only identifiers potentially changed.
func EnsureUniqueIDs(headings []FlatHeading) []FlatHeading {
	seen := make(map[string]int, len(headings))
	resolved := make([]FlatHeading, len(headings))
	for i, h := range headings {
		repeats := seen[h.ID]
		seen[h.ID] = repeats + 1
		if repeats > 0 {
			h.ID = fmt.Sprintf("%s-%d", h.ID, repeats)
		}
		resolved[i] = h
	}
	return resolved
}
