package search

import (
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"sitekit/pkg/config"
)

// Chunk represents a single indexable chunk of content with its metadata.
type Chunk struct {
	Content          string   `json:"content"`                     // Chunk text (includes heading context when hierarchy is enabled)
	HeadingHierarchy []string `json:"heading_hierarchy,omitempty"` // Headings covering this chunk, outermost first
	TokenCount       int      `json:"token_count"`                 // Token count, -1 when the tokenizer is unavailable
}

// headingRegex matches markdown headings at the start of lines.
var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// ChunkMarkdown splits markdown content into indexable chunks using a hybrid
// strategy: split by markdown headers first, preserving heading hierarchy,
// then recursively split any chunk still exceeding the configured size.
func ChunkMarkdown(markdown string, cfg config.SearchConfig) ([]Chunk, error) {
	if markdown == "" {
		return nil, nil
	}

	// Token-aware length function when the tokenizer is initialized
	lenFunc := func(s string) int {
		if n := CountTokens(s); n >= 0 {
			return n
		}
		return len(s)
	}

	// Nil overlap means the config was never validated; use the default.
	overlap := 50
	if cfg.ChunkOverlap != nil {
		overlap = *cfg.ChunkOverlap
	}

	// Recursive splitter handles oversized header-delimited chunks
	recursiveSplitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.MaxChunkSize),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithLenFunc(lenFunc),
	)

	splitter := textsplitter.NewMarkdownTextSplitter(
		textsplitter.WithHeadingHierarchy(true),
		textsplitter.WithChunkSize(cfg.MaxChunkSize),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSecondSplitter(recursiveSplitter),
		textsplitter.WithLenFunc(lenFunc),
	)

	parts, err := splitter.SplitText(markdown)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Content:          part,
			HeadingHierarchy: extractHeadingHierarchy(part),
			TokenCount:       CountTokens(part),
		})
	}

	return chunks, nil
}

// extractHeadingHierarchy pulls the markdown headings present in chunk
// content, in order of appearance.
func extractHeadingHierarchy(content string) []string {
	matches := headingRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	hierarchy := make([]string, 0, len(matches))
	for _, match := range matches {
		if len(match) >= 3 {
			heading := strings.TrimSpace(match[2])
			if heading != "" {
				hierarchy = append(hierarchy, heading)
			}
		}
	}

	return hierarchy
}
