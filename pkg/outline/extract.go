package outline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitekit/pkg/utils"
)

// headingSelector matches every heading element; goquery yields matches in
// document order, which the flat sequence must preserve.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// ExtractHeadings scans rendered HTML and returns its headings as a flat
// sequence in first-appearance order.
//
// For each heading element the tag digit becomes the level, an explicit id
// attribute is kept as the identifier, and the text is the element's content
// with inline markup stripped and entities decoded by the HTML parser.
// Headings whose stripped text is empty are dropped entirely. When no id
// attribute is present a candidate identifier is generated with Slugify;
// uniqueness across the sequence is EnsureUniqueIDs' job, not this one's.
//
// The underlying parser is tolerant of malformed markup: unterminated or
// misnested heading tags simply do not produce matches, they never raise.
func ExtractHeadings(markup string) ([]FlatHeading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, utils.WrapErrorf(utils.ErrParsing, "HTML document: %v", err)
	}

	var headings []FlatHeading
	doc.Find(headingSelector).Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		level := int(name[1] - '0')

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return // content-quality filter, not an error
		}

		id, ok := sel.Attr("id")
		if !ok || id == "" {
			id = Slugify(text)
		}

		headings = append(headings, FlatHeading{ID: id, Text: text, Level: level})
	})

	return headings, nil
}
