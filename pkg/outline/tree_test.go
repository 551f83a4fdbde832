package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree_SimpleNesting(t *testing.T) {
	flat := []FlatHeading{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "setup", Text: "Setup", Level: 2},
		{ID: "usage", Text: "Usage", Level: 2},
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 1)
	assert.Equal(t, "intro", roots[0].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "setup", roots[0].Children[0].ID)
	assert.Equal(t, "usage", roots[0].Children[1].ID)
}

func TestBuildTree_DeepThenShallow(t *testing.T) {
	// A document starting deep has no shallower ancestor, so both headings
	// become roots in document order.
	flat := []FlatHeading{
		{ID: "deep", Text: "Deep", Level: 3},
		{ID: "top", Text: "Top", Level: 1},
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "deep", roots[0].ID)
	assert.Empty(t, roots[0].Children)
	assert.Equal(t, "top", roots[1].ID)
}

func TestBuildTree_LevelGapsDegradeGracefully(t *testing.T) {
	// h1 -> h4 nests the h4 directly under the h1, one level deeper, not at
	// an absolute depth of four.
	flat := []FlatHeading{
		{ID: "a", Level: 1},
		{ID: "b", Level: 4},
		{ID: "c", Level: 2},
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "b", roots[0].Children[0].ID)
	assert.Equal(t, "c", roots[0].Children[1].ID)
}

func TestBuildTree_SiblingsAfterPop(t *testing.T) {
	flat := []FlatHeading{
		{ID: "one", Level: 1},
		{ID: "one-a", Level: 2},
		{ID: "one-a-i", Level: 3},
		{ID: "one-b", Level: 2},
		{ID: "two", Level: 1},
	}

	roots := BuildTree(flat)

	require.Len(t, roots, 2)
	one := roots[0]
	require.Len(t, one.Children, 2)
	assert.Equal(t, "one-a", one.Children[0].ID)
	assert.Equal(t, "one-b", one.Children[1].ID)
	require.Len(t, one.Children[0].Children, 1)
	assert.Equal(t, "one-a-i", one.Children[0].Children[0].ID)
	assert.Empty(t, roots[1].Children)
}

func TestBuildTree_DepthInvariant(t *testing.T) {
	flat := []FlatHeading{
		{ID: "a", Level: 2},
		{ID: "b", Level: 5},
		{ID: "c", Level: 3},
		{ID: "d", Level: 3},
		{ID: "e", Level: 1},
		{ID: "f", Level: 6},
	}

	roots := BuildTree(flat)

	var check func(parent *Heading)
	check = func(parent *Heading) {
		for _, child := range parent.Children {
			assert.Greater(t, child.Level, parent.Level,
				"child %q must be strictly deeper than parent %q", child.ID, parent.ID)
			check(child)
		}
	}
	for _, root := range roots {
		check(root)
	}
}

func TestBuildTree_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
	assert.Empty(t, BuildTree([]FlatHeading{}))
}

func TestFlatten_RoundTrip(t *testing.T) {
	flat := EnsureUniqueIDs([]FlatHeading{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "intro", Text: "Intro Again", Level: 2},
		{ID: "detail", Text: "Detail", Level: 3},
		{ID: "other", Text: "Other", Level: 2},
		{ID: "second", Text: "Second", Level: 1},
	})

	assert.Equal(t, flat, Flatten(BuildTree(flat)),
		"pre-order flatten must reproduce the resolved flat sequence exactly")
}

func TestFilterByLevel(t *testing.T) {
	flat := []FlatHeading{
		{ID: "a", Level: 1},
		{ID: "b", Level: 2},
		{ID: "c", Level: 3},
		{ID: "d", Level: 4},
		{ID: "e", Level: 2},
	}

	tests := []struct {
		name     string
		min, max int
		ids      []string
	}{
		{"full range", 1, 6, []string{"a", "b", "c", "d", "e"}},
		{"levels 2-3", 2, 3, []string{"b", "c", "e"}},
		{"single level", 2, 2, []string{"b", "e"}},
		{"empty range", 5, 6, []string{}},
		{"inverted range", 3, 2, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterByLevel(flat, tc.min, tc.max)
			ids := make([]string, 0, len(got))
			for _, h := range got {
				ids = append(ids, h.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	html := `<h1>Intro</h1><h2>Overview</h2><h2>Overview</h2><h2></h2><h3>Deep Dive</h3>`

	flat, err := ExtractHeadings(html)
	require.NoError(t, err)
	resolved := EnsureUniqueIDs(flat)
	roots := BuildTree(resolved)

	require.Len(t, roots, 1)
	intro := roots[0]
	require.Len(t, intro.Children, 2)
	assert.Equal(t, "overview", intro.Children[0].ID)
	assert.Equal(t, "overview-1", intro.Children[1].ID)
	require.Len(t, intro.Children[1].Children, 1)
	assert.Equal(t, "deep-dive", intro.Children[1].Children[0].ID)
}
