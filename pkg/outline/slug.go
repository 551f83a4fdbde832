package outline

import (
	"regexp"
	"strings"
)

// --- Identifier Generation ---
var nonSlugChars = regexp.MustCompile(`[^\w\s-]`) // Everything but word chars, whitespace, hyphens
var whitespaceRuns = regexp.MustCompile(`\s+`)    // Runs of whitespace collapse to one hyphen
var hyphenRuns = regexp.MustCompile(`-+`)         // Runs of hyphens collapse to one

// Slugify derives a URL-safe identifier candidate from heading text:
// lowercase, strip ineligible characters, hyphenate whitespace, collapse and
// trim hyphens. The result may be empty when the text has no eligible
// characters; that degenerate output is returned as-is. Slugify is stable
// under its own transformation: applying it to its own output is a no-op.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
