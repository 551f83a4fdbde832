// Package render turns markdown sources into HTML pages and outline-aware
// artifacts: anchor stamping, table-of-contents fragments, and markdown
// exports of rendered pages.
package render

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"sitekit/pkg/outline"
	"sitekit/pkg/utils"
)

// md is the shared converter. WithUnsafe keeps raw HTML in sources, so
// authors can declare explicit heading ids that the outline extractor will
// honor over generated slugs.
var md = goldmark.New(
	goldmark.WithRendererOptions(htmlrenderer.WithUnsafe()),
)

// Markdown renders markdown source to an HTML fragment.
func Markdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", utils.WrapErrorf(utils.ErrMarkdownRender, "%v", err)
	}
	return buf.String(), nil
}

// ApplyHeadingIDs stamps resolved outline identifiers onto the heading
// elements of a rendered page, so in-page anchors match the generated
// outline exactly.
//
// Headings are matched positionally against the resolved sequence, skipping
// whitespace-only headings the same way extraction drops them. Passing the
// output of outline.EnsureUniqueIDs over the same markup therefore lines up
// one-to-one.
func ApplyHeadingIDs(markup string, headings []outline.FlatHeading) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", utils.WrapErrorf(utils.ErrParsing, "HTML document: %v", err)
	}

	i := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" {
			return // extraction dropped this one, keep positions aligned
		}
		if i < len(headings) {
			sel.SetAttr("id", headings[i].ID)
			i++
		}
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", utils.WrapErrorf(utils.ErrParsing, "serializing HTML: %v", err)
	}
	return body, nil
}
