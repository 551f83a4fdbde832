package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitekit/pkg/outline"
)

func TestMarkdown_BasicRendering(t *testing.T) {
	src := []byte("# Title\n\nSome *emphasized* text.\n\n## Section\n")

	html, err := Markdown(src)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<em>emphasized</em>")
	assert.Contains(t, html, "<h2>Section</h2>")
}

func TestMarkdown_RawHTMLPassthrough(t *testing.T) {
	src := []byte(`<h2 id="pinned">Pinned Anchor</h2>`)

	html, err := Markdown(src)
	require.NoError(t, err)

	assert.Contains(t, html, `id="pinned"`)
}

func TestMarkdown_Empty(t *testing.T) {
	html, err := Markdown(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(html))
}

func TestApplyHeadingIDs(t *testing.T) {
	markup := `<h1>Intro</h1><p>x</p><h2>Overview</h2><h2>Overview</h2>`

	flat, err := outline.ExtractHeadings(markup)
	require.NoError(t, err)
	resolved := outline.EnsureUniqueIDs(flat)

	out, err := ApplyHeadingIDs(markup, resolved)
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, out, `id="overview"`)
	assert.Contains(t, out, `id="overview-1"`)
}

func TestApplyHeadingIDs_SkipsEmptyHeadings(t *testing.T) {
	markup := `<h2></h2><h2>Real</h2>`

	flat, err := outline.ExtractHeadings(markup)
	require.NoError(t, err)
	require.Len(t, flat, 1)

	out, err := ApplyHeadingIDs(markup, outline.EnsureUniqueIDs(flat))
	require.NoError(t, err)

	assert.Contains(t, out, `<h2 id="real">Real</h2>`)
}

func TestTOCHTML(t *testing.T) {
	roots := outline.BuildTree([]outline.FlatHeading{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "setup", Text: "Setup & Run", Level: 2},
	})

	html := TOCHTML(roots)

	assert.Contains(t, html, `<ul class="toc">`)
	assert.Contains(t, html, `<a href="#intro">Intro</a>`)
	assert.Contains(t, html, `<a href="#setup">Setup &amp; Run</a>`)
}

func TestTOCHTML_Empty(t *testing.T) {
	assert.Empty(t, TOCHTML(nil))
}

func TestTOCMarkdown(t *testing.T) {
	roots := outline.BuildTree([]outline.FlatHeading{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "setup", Text: "Setup", Level: 2},
		{ID: "deep", Text: "Deep", Level: 3},
		{ID: "second", Text: "Second", Level: 1},
	})

	got := TOCMarkdown(roots)

	expected := "- [Intro](#intro)\n" +
		"  - [Setup](#setup)\n" +
		"    - [Deep](#deep)\n" +
		"- [Second](#second)\n"
	assert.Equal(t, expected, got)
}

func TestExportMarkdown(t *testing.T) {
	out, err := ExportMarkdown(`<h1>Title</h1><p>Body text.</p>`)
	require.NoError(t, err)

	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "Body text.")
}

func TestMarkdownExportRoundTrip(t *testing.T) {
	src := "# Guide\n\nSome **bold** text.\n"

	markup, err := Markdown([]byte(src))
	require.NoError(t, err)

	out, err := ExportMarkdown(markup)
	require.NoError(t, err)

	assert.Contains(t, out, "# Guide")
	assert.Contains(t, out, "**bold**")
}
