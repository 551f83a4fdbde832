package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Intro", "intro"},
		{"spaces become hyphens", "Getting Started", "getting-started"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"multiple spaces collapse", "a   b", "a-b"},
		{"existing hyphens kept", "pre-built", "pre-built"},
		{"hyphen runs collapse", "a -- b", "a-b"},
		{"leading trailing trimmed", " - padded - ", "padded"},
		{"underscores are word chars", "snake_case", "snake_case"},
		{"digits kept", "Chapter 42", "chapter-42"},
		{"symbols removed", "C++ & Go", "c-go"},
		{"only symbols yields empty", "!@#$%", ""},
		{"only hyphens yields empty", "---", ""},
		{"empty input", "", ""},
		{"mixed case", "MiXeD CaSe", "mixed-case"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Some Heading"), Slugify("Some Heading"))
}

func TestSlugify_StableUnderItself(t *testing.T) {
	// A slug run through Slugify again must come out unchanged.
	inputs := []string{"Getting Started", "Hello, World!", "a -- b", "Chapter 42", ""}
	for _, in := range inputs {
		slug := Slugify(in)
		assert.Equal(t, slug, Slugify(slug), "input %q", in)
	}
}
