package outline

// BuildTree nests an ordered flat sequence into a forest of outline roots.
//
// A single linear scan maintains an explicit stack of open ancestors, from
// shallowest at the bottom to deepest on top. Each incoming heading first
// pops every stacked node at a greater-or-equal level (those can no longer be
// ancestors), then attaches as a root if the stack is empty or as the last
// child of the stack top otherwise, and finally pushes itself as a candidate
// ancestor for whatever follows.
//
// The input is assumed to be in document order; no sorting happens. Level
// gaps degrade gracefully: a document starting at h3, or jumping h1→h4,
// nests each heading under its nearest preceding shallower heading rather
// than at an absolute depth. Empty input yields an empty forest.
func BuildTree(headings []FlatHeading) []*Heading {
	var roots []*Heading
	var stack []*Heading

	for _, fh := range headings {
		node := &Heading{FlatHeading: fh}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return roots
}
