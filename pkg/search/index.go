package search

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"sitekit/pkg/utils"
)

// Document is one indexed page: its location, display metadata, resolved
// heading texts, and content chunks.
type Document struct {
	Path     string   `json:"path"`    // Output-relative path of the built page
	Section  string   `json:"section"` // Section key the page belongs to
	Title    string   `json:"title"`
	Headings []string `json:"headings,omitempty"`
	Chunks   []Chunk  `json:"chunks,omitempty"`
}

// Result is a single search hit.
type Result struct {
	Path          string `json:"path"`
	Section       string `json:"section"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet,omitempty"`
	MatchLocation string `json:"match_location"` // "title", "headings" or "content"
	Score         int    `json:"score"`
}

// Index is an in-memory content index with JSON persistence. Add and Search
// are safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	docs []Document
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends a document to the index.
func (ix *Index) Add(doc Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = append(ix.docs, doc)
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

const snippetLen = 150

// Search matches the query case-insensitively against titles, headings, and
// chunk content. Title matches score highest, heading matches next, content
// matches by occurrence count. Results are sorted by score descending, then
// by path for determinism, and truncated to limit.
func (ix *Index) Search(query string, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}
	queryLower := strings.ToLower(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var results []Result
	for _, doc := range ix.docs {
		score := 0
		matchLocation := ""
		snippet := ""

		if strings.Contains(strings.ToLower(doc.Title), queryLower) {
			score += 10
			matchLocation = "title"
		}

		for _, heading := range doc.Headings {
			if strings.Contains(strings.ToLower(heading), queryLower) {
				score += 5
				if matchLocation == "" {
					matchLocation = "headings"
				}
			}
		}

		for _, chunk := range doc.Chunks {
			contentLower := strings.ToLower(chunk.Content)
			if n := strings.Count(contentLower, queryLower); n > 0 {
				score += n
				if matchLocation == "" {
					matchLocation = "content"
				}
				if snippet == "" {
					snippet = extractSnippet(chunk.Content, query, snippetLen)
				}
			}
		}

		if score > 0 {
			results = append(results, Result{
				Path:          doc.Path,
				Section:       doc.Section,
				Title:         doc.Title,
				Snippet:       snippet,
				MatchLocation: matchLocation,
				Score:         score,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Save writes the index to path as JSON.
func (ix *Index) Save(path string) error {
	ix.mu.RLock()
	data, err := json.MarshalIndent(ix.docs, "", "  ")
	ix.mu.RUnlock()
	if err != nil {
		return utils.WrapErrorf(utils.ErrParsing, "encoding index JSON: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return utils.WrapErrorf(utils.ErrFilesystem, "writing index '%s': %v", path, err)
	}
	return nil
}

// LoadIndex reads an index previously written by Save.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.WrapErrorf(utils.ErrFilesystem, "reading index '%s': %v", path, err)
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, utils.WrapErrorf(utils.ErrParsing, "decoding index JSON from '%s': %v", path, err)
	}
	return &Index{docs: docs}, nil
}

// extractSnippet extracts a snippet around the query match, slicing on rune
// boundaries so multi-byte UTF-8 characters are never split.
func extractSnippet(content, query string, maxLen int) string {
	runes := []rune(content)
	queryRunes := []rune(strings.ToLower(query))
	contentLowerRunes := []rune(strings.ToLower(content))

	// Find match position in runes
	idx := -1
	for i := 0; i <= len(contentLowerRunes)-len(queryRunes); i++ {
		if string(contentLowerRunes[i:i+len(queryRunes)]) == string(queryRunes) {
			idx = i
			break
		}
	}

	if idx == -1 {
		if len(runes) > maxLen {
			return string(runes[:maxLen]) + "..."
		}
		return content
	}

	start := idx - maxLen/2
	if start < 0 {
		start = 0
	}
	end := idx + len(queryRunes) + maxLen/2
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet = snippet + "..."
	}
	return snippet
}
