package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"sitekit/pkg/config"
	"sitekit/pkg/outline"
	"sitekit/pkg/render"
	"sitekit/pkg/search"
	"sitekit/pkg/utils"
)

// formatJSON marshals a value as indented JSON for tool output.
func formatJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("error formatting response: %v", err)
	}
	return string(data)
}

// handleListSections returns the configured content sections.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type sectionInfo struct {
		Key         string `json:"key"`
		Kind        string `json:"kind"`
		Title       string `json:"title,omitempty"`
		SourceDir   string `json:"source_dir"`
		MinLevel    int    `json:"outline_min_level"`
		MaxLevel    int    `json:"outline_max_level"`
		SearchIndex bool   `json:"search_indexed"`
	}

	keys := make([]string, 0, len(s.cfg.AppConfig.Sections))
	for key := range s.cfg.AppConfig.Sections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sections := make([]sectionInfo, 0, len(keys))
	for _, key := range keys {
		sec := s.cfg.AppConfig.Sections[key]
		sections = append(sections, sectionInfo{
			Key:         key,
			Kind:        string(sec.Kind),
			Title:       config.GetEffectiveSectionTitle(key, sec),
			SourceDir:   sec.SourceDir,
			MinLevel:    config.GetEffectiveOutlineMinLevel(sec, *s.cfg.AppConfig),
			MaxLevel:    config.GetEffectiveOutlineMaxLevel(sec, *s.cfg.AppConfig),
			SearchIndex: !config.GetEffectiveSkipSearchIndex(sec, *s.cfg.AppConfig),
		})
	}

	response := map[string]interface{}{
		"site_title": s.cfg.AppConfig.SiteTitle,
		"sections":   sections,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetOutline extracts the heading outline of a document.
func (s *Server) handleGetOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := request.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("content parameter is required"), nil
	}

	format := request.GetString("format", "markdown")
	minLevel := request.GetInt("min_level", 1)
	maxLevel := request.GetInt("max_level", 6)
	if minLevel < 1 || minLevel > 6 || maxLevel < 1 || maxLevel > 6 || minLevel > maxLevel {
		return mcp.NewToolResultError(fmt.Sprintf("invalid level range [%d, %d]: levels must be within 1..6 and min_level <= max_level", minLevel, maxLevel)), nil
	}

	response, err := outlineResponse(content, format, minLevel, maxLevel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// outlineResponse runs the outline pipeline over a document. Anchors are
// resolved over the full heading sequence before level filtering, so a
// depth-restricted outline keeps the same anchors as the full one. Both the
// flat list and the tree honor the level window.
func outlineResponse(content, format string, minLevel, maxLevel int) (map[string]interface{}, error) {
	markup := content
	switch format {
	case "markdown":
		rendered, err := render.Markdown([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("rendering markdown: %w", err)
		}
		markup = rendered
	case "html":
		// Already markup.
	default:
		return nil, fmt.Errorf("unknown format %q (supported: markdown, html)", format)
	}

	flat, err := outline.ExtractHeadings(markup)
	if err != nil {
		return nil, fmt.Errorf("extracting headings: %w", err)
	}
	resolved := outline.EnsureUniqueIDs(flat)
	filtered := outline.FilterByLevel(resolved, minLevel, maxLevel)

	return map[string]interface{}{
		"heading_count": len(filtered),
		"headings":      filtered,
		"outline":       outline.BuildTree(filtered),
	}, nil
}

// handleSearchContent searches the built site's index.
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	section := request.GetString("section", "")
	if section != "" {
		if _, err := s.cfg.AppConfig.Section(section); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	maxResults := request.GetInt("max_results", 10)
	if maxResults < 1 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	indexPath := filepath.Join(s.cfg.AppConfig.StateDir, s.cfg.AppConfig.Search.IndexFilename)
	idx, err := search.LoadIndex(indexPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading search index from %s: %v (run a site build first)", indexPath, err)), nil
	}

	results := idx.Search(query, maxResults)
	if section != "" {
		filtered := results[:0]
		for _, r := range results {
			if r.Section == section {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	response := map[string]interface{}{
		"query":        query,
		"result_count": len(results),
		"results":      results,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetProgress reads the recorded progress for a slide deck.
func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckID := request.GetString("deck_id", "")
	if deckID == "" {
		return mcp.NewToolResultError("deck_id parameter is required"), nil
	}

	rec, err := s.progressStore.Get(deckID)
	if err != nil {
		if errors.Is(err, utils.ErrProgressNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no progress recorded for deck %q", deckID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reading progress: %v", err)), nil
	}

	response := map[string]interface{}{
		"progress":         rec,
		"percent_complete": rec.PercentComplete(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSetProgress records the current slide for a deck.
func (s *Server) handleSetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckID := request.GetString("deck_id", "")
	if deckID == "" {
		return mcp.NewToolResultError("deck_id parameter is required"), nil
	}
	slideIndex := request.GetInt("slide_index", -1)
	if slideIndex < 0 {
		return mcp.NewToolResultError("slide_index is required and must be >= 0"), nil
	}
	slideCount := request.GetInt("slide_count", 0)
	if slideCount < 0 {
		slideCount = 0
	}

	rec, err := s.progressStore.Set(deckID, slideIndex, slideCount)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording progress: %v", err)), nil
	}

	s.log.WithFields(map[string]interface{}{
		"deck_id":     rec.DeckID,
		"slide_index": rec.SlideIndex,
	}).Info("Progress recorded via MCP")

	response := map[string]interface{}{
		"progress":         rec,
		"percent_complete": rec.PercentComplete(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}
