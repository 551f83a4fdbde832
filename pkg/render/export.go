package render

import (
	htmltomd "github.com/JohannesKaufmann/html-to-markdown"

	"sitekit/pkg/utils"
)

// ExportMarkdown converts a rendered HTML page back to markdown. Used by the
// export command and the MCP surface to hand pages to markdown consumers.
func ExportMarkdown(markup string) (string, error) {
	converter := htmltomd.NewConverter("", true, nil)
	out, err := converter.ConvertString(markup)
	if err != nil {
		return "", utils.WrapErrorf(utils.ErrMarkdownConversion, "%v", err)
	}
	return out, nil
}
