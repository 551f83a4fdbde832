package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "None"},
		{"config validation", WrapErrorf(ErrConfigValidation, "bad field"), "Config_Validation"},
		{"unknown section", fmt.Errorf("%w: 'blog'", ErrUnknownSection), "Config_UnknownSection"},
		{"html parsing", fmt.Errorf("%w: invalid HTML fragment", ErrParsing), "Content_ParsingHTML"},
		{"yaml parsing", fmt.Errorf("%w: YAML unmarshal failed", ErrParsing), "Content_ParsingYAML"},
		{"generic parsing", fmt.Errorf("%w: something else", ErrParsing), "Content_ParsingOther"},
		{"markdown render", fmt.Errorf("%w: goldmark failure", ErrMarkdownRender), "Content_MarkdownRender"},
		{"markdown export", fmt.Errorf("%w: converter failure", ErrMarkdownConversion), "Content_MarkdownExport"},
		{"progress not found", fmt.Errorf("%w: deck 'intro'", ErrProgressNotFound), "Progress_NotFound"},
		{"filesystem not exist", fmt.Errorf("%w: %w", ErrFilesystem, os.ErrNotExist), "Filesystem_NotExist"},
		{"filesystem other", fmt.Errorf("%w: disk trouble", ErrFilesystem), "Filesystem_Other"},
		{"database", fmt.Errorf("%w: txn conflict", ErrDatabase), "Database_Other"},
		{"context canceled", context.Canceled, "System_ContextCanceled"},
		{"deadline exceeded", context.DeadlineExceeded, "System_ContextDeadlineExceeded"},
		{"unknown", errors.New("mystery"), "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CategorizeError(tc.err))
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(ErrConfigValidation, "field %q is invalid", "workers")
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.Contains(t, err.Error(), `field "workers" is invalid`)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "getting-started", "getting-started"},
		{"invalid chars", `intro<to>:go"`, "intro_to_go"},
		{"slashes", "a/b\\c", "a_b_c"},
		{"collapses underscores", "a___b", "a_b"},
		{"trims", "_hello_ ", "hello"},
		{"empty becomes untitled", "", "untitled"},
		{"only invalid becomes untitled", "///", "untitled"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestSanitizeFilename_LongInput(t *testing.T) {
	long := ""
	for range 30 {
		long += "abcdefghij"
	}
	out := SanitizeFilename(long)
	assert.LessOrEqual(t, len(out), 100)
	assert.NotEmpty(t, out)
}

func TestCalculateStringSHA256(t *testing.T) {
	a := CalculateStringSHA256("hello")
	b := CalculateStringSHA256("hello")
	c := CalculateStringSHA256("world")

	assert.Equal(t, a, b, "same input must hash identically")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest length")
}

func TestCalculateFileSHA256(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Title</h1>"), 0644))

	fileHash, err := CalculateFileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, CalculateStringSHA256("<h1>Title</h1>"), fileHash)

	_, err = CalculateFileSHA256(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}
