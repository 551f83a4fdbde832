package search

import (
	"strings"
	"testing"

	"sitekit/pkg/config"
)

func testSearchConfig() config.SearchConfig {
	overlap := 50
	return config.SearchConfig{
		MaxChunkSize: 512,
		ChunkOverlap: &overlap,
	}
}

func TestChunkMarkdown_Empty(t *testing.T) {
	chunks, err := ChunkMarkdown("", testSearchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestChunkMarkdown_SingleSmallChunk(t *testing.T) {
	markdown := `# Hello

This is a small article.`

	chunks, err := ChunkMarkdown(markdown, testSearchConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk for small document, got %d", len(chunks))
	}

	if len(chunks) > 0 {
		if !strings.Contains(chunks[0].Content, "Hello") {
			t.Errorf("expected chunk to contain 'Hello', got: %s", chunks[0].Content)
		}
	}
}

func TestChunkMarkdown_HeaderHierarchy(t *testing.T) {
	markdown := `# Main Title

Introduction paragraph.

## Section One

Content for section one.

### Subsection 1.1

More detailed content here.

## Section Two

Content for section two.
`

	overlap := 10
	cfg := config.SearchConfig{
		MaxChunkSize: 100,
		ChunkOverlap: &overlap,
	}

	chunks, err := ChunkMarkdown(markdown, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Errorf("expected multiple chunks, got %d", len(chunks))
	}

	foundWithHierarchy := false
	for _, chunk := range chunks {
		if len(chunk.HeadingHierarchy) > 0 {
			foundWithHierarchy = true
			break
		}
	}
	if !foundWithHierarchy {
		t.Error("expected at least one chunk with heading hierarchy")
	}
}

func TestExtractHeadingHierarchy(t *testing.T) {
	content := "# Top\n\ntext\n\n## Nested\n\nmore"
	got := extractHeadingHierarchy(content)
	if len(got) != 2 || got[0] != "Top" || got[1] != "Nested" {
		t.Errorf("unexpected hierarchy: %v", got)
	}

	if h := extractHeadingHierarchy("no headings here"); h != nil {
		t.Errorf("expected nil hierarchy, got %v", h)
	}
}

func TestCountTokens_Uninitialized(t *testing.T) {
	// The default codec is process-wide; only assert the uninitialized
	// sentinel when no other test has set one up.
	if IsInitialized() {
		t.Skip("tokenizer already initialized by another test")
	}
	if n := CountTokens("hello world"); n != -1 {
		t.Errorf("expected -1 before initialization, got %d", n)
	}
}

func TestInitTokenizer(t *testing.T) {
	if err := InitTokenizer(""); err != nil {
		t.Fatalf("InitTokenizer failed: %v", err)
	}
	if !IsInitialized() {
		t.Fatal("expected tokenizer to report initialized")
	}
	if n := CountTokens("hello world"); n <= 0 {
		t.Errorf("expected positive token count, got %d", n)
	}
}
