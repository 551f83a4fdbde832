package render

import (
	"fmt"
	"html"
	"strings"

	"sitekit/pkg/outline"
)

// TOCHTML renders an outline forest as nested unordered lists with anchor
// links, ready to embed as a page's table of contents. Empty input yields an
// empty string.
func TOCHTML(roots []*outline.Heading) string {
	if len(roots) == 0 {
		return ""
	}
	var sb strings.Builder
	writeTOCLevel(&sb, roots, 0)
	return sb.String()
}

func writeTOCLevel(sb *strings.Builder, nodes []*outline.Heading, depth int) {
	indent := strings.Repeat("  ", depth)
	if depth == 0 {
		fmt.Fprintf(sb, "%s<ul class=\"toc\">\n", indent)
	} else {
		fmt.Fprintf(sb, "%s<ul>\n", indent)
	}
	for _, n := range nodes {
		fmt.Fprintf(sb, "%s  <li><a href=\"#%s\">%s</a>", indent, html.EscapeString(n.ID), html.EscapeString(n.Text))
		if len(n.Children) > 0 {
			sb.WriteString("\n")
			writeTOCLevel(sb, n.Children, depth+2)
			fmt.Fprintf(sb, "%s  </li>\n", indent)
		} else {
			sb.WriteString("</li>\n")
		}
	}
	fmt.Fprintf(sb, "%s</ul>\n", indent)
}

// TOCMarkdown renders an outline forest as a nested markdown list of anchor
// links, two spaces of indentation per nesting step.
func TOCMarkdown(roots []*outline.Heading) string {
	var sb strings.Builder
	var walk func(nodes []*outline.Heading, depth int)
	walk = func(nodes []*outline.Heading, depth int) {
		for _, n := range nodes {
			fmt.Fprintf(&sb, "%s- [%s](#%s)\n", strings.Repeat("  ", depth), n.Text, n.ID)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return sb.String()
}
