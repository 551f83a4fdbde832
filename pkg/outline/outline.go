// Package outline extracts heading structures from rendered HTML and builds
// hierarchical document outlines from them.
//
// The pipeline is three pure functions applied in sequence: ExtractHeadings
// scans markup for h1-h6 elements in document order, EnsureUniqueIDs resolves
// identifier collisions with numeric suffixes, and BuildTree nests the flat
// sequence into a forest by heading level. Every function is deterministic,
// holds no state between calls, and is safe for concurrent use.
package outline

// FlatHeading is one heading occurrence in document order, prior to nesting.
type FlatHeading struct {
	ID    string `json:"id" yaml:"id"`       // URL-safe anchor, unique after EnsureUniqueIDs
	Text  string `json:"text" yaml:"text"`   // Plain text, inline markup stripped, entities decoded
	Level int    `json:"level" yaml:"level"` // Semantic depth 1-6 (tag digit)
}

// Heading is an outline tree node: a FlatHeading plus its nested children.
// Children are always at a strictly greater level than their parent.
type Heading struct {
	FlatHeading `yaml:",inline"`
	Children    []*Heading `json:"children,omitempty" yaml:"children,omitempty"`
}

// Flatten returns the pre-order traversal of a forest built by BuildTree.
// For any resolved flat sequence, Flatten(BuildTree(seq)) == seq.
func Flatten(roots []*Heading) []FlatHeading {
	var out []FlatHeading
	var walk func(nodes []*Heading)
	walk = func(nodes []*Heading) {
		for _, n := range nodes {
			out = append(out, n.FlatHeading)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// FilterByLevel retains only headings whose level lies in [minLevel, maxLevel],
// preserving order. Identifiers are left untouched, so a depth-restricted
// outline keeps the same anchors as the full one.
func FilterByLevel(headings []FlatHeading, minLevel, maxLevel int) []FlatHeading {
	filtered := make([]FlatHeading, 0, len(headings))
	for _, h := range headings {
		if h.Level >= minLevel && h.Level <= maxLevel {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
