package outline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUniqueIDs_NoCollisions(t *testing.T) {
	in := []FlatHeading{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "setup", Text: "Setup", Level: 2},
	}

	out := EnsureUniqueIDs(in)

	assert.Equal(t, in, out, "collision-free input passes through unchanged")
}

func TestEnsureUniqueIDs_SuffixLaw(t *testing.T) {
	in := []FlatHeading{
		{ID: "overview", Text: "Overview", Level: 2},
		{ID: "overview", Text: "Overview", Level: 2},
		{ID: "overview", Text: "Overview", Level: 2},
	}

	out := EnsureUniqueIDs(in)

	require.Len(t, out, 3)
	assert.Equal(t, "overview", out[0].ID)
	assert.Equal(t, "overview-1", out[1].ID)
	assert.Equal(t, "overview-2", out[2].ID)
}

func TestEnsureUniqueIDs_CountsByOriginalID(t *testing.T) {
	// The counter key is the original id, so "intro-1" never becomes
	// "intro-1-1" just because "intro" repeated before it.
	in := []FlatHeading{
		{ID: "intro", Level: 1},
		{ID: "intro", Level: 2},
		{ID: "usage", Level: 2},
		{ID: "intro", Level: 3},
	}

	out := EnsureUniqueIDs(in)

	ids := make([]string, len(out))
	for i, h := range out {
		ids[i] = h.ID
	}
	assert.Equal(t, []string{"intro", "intro-1", "usage", "intro-2"}, ids)
}

func TestEnsureUniqueIDs_PairwiseDistinct(t *testing.T) {
	var in []FlatHeading
	for i := range 50 {
		in = append(in, FlatHeading{ID: fmt.Sprintf("h%d", i%5), Level: 2})
	}

	out := EnsureUniqueIDs(in)

	seen := make(map[string]bool, len(out))
	for _, h := range out {
		assert.False(t, seen[h.ID], "duplicate resolved id %q", h.ID)
		seen[h.ID] = true
	}
}

func TestEnsureUniqueIDs_DoesNotMutateInput(t *testing.T) {
	in := []FlatHeading{
		{ID: "dup", Level: 1},
		{ID: "dup", Level: 2},
	}

	_ = EnsureUniqueIDs(in)

	assert.Equal(t, "dup", in[0].ID)
	assert.Equal(t, "dup", in[1].ID)
}

func TestEnsureUniqueIDs_EmptyIDsStillResolved(t *testing.T) {
	// Slugify can produce empty identifiers; the resolver only guarantees
	// uniqueness, not non-emptiness.
	in := []FlatHeading{
		{ID: "", Level: 2},
		{ID: "", Level: 2},
	}

	out := EnsureUniqueIDs(in)

	assert.Equal(t, "", out[0].ID)
	assert.Equal(t, "-1", out[1].ID)
}

func TestEnsureUniqueIDs_EmptyInput(t *testing.T) {
	assert.Empty(t, EnsureUniqueIDs(nil))
}
