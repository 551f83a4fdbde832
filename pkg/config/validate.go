package config

import (
	"fmt"

	"sitekit/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// SiteTitle
	if c.SiteTitle == "" {
		warnings = append(warnings, "site_title is empty, defaulting to 'Untitled Site'")
		c.SiteTitle = "Untitled Site"
	}

	// ContentDir
	if c.ContentDir == "" {
		warnings = append(warnings, "content_dir is empty, defaulting to './content'")
		c.ContentDir = "./content"
	}

	// OutputDir
	if c.OutputDir == "" {
		warnings = append(warnings, "output_dir is empty, defaulting to './public'")
		c.OutputDir = "./public"
	}

	// StateDir
	if c.StateDir == "" {
		warnings = append(warnings, "state_dir is empty, defaulting to './site_state'")
		c.StateDir = "./site_state"
	}

	// NumWorkers
	if c.NumWorkers <= 0 {
		warnings = append(warnings, "num_workers should be > 0, defaulting to 4")
		c.NumWorkers = 4
	}

	// Outline level bounds
	if c.OutlineMinLevel <= 0 {
		c.OutlineMinLevel = 1
	}
	if c.OutlineMaxLevel <= 0 {
		c.OutlineMaxLevel = 6
	}
	if c.OutlineMinLevel > 6 {
		warnings = append(warnings, fmt.Sprintf(
			"outline_min_level %d exceeds 6, clamping to 6", c.OutlineMinLevel))
		c.OutlineMinLevel = 6
	}
	if c.OutlineMaxLevel > 6 {
		warnings = append(warnings, fmt.Sprintf(
			"outline_max_level %d exceeds 6, clamping to 6", c.OutlineMaxLevel))
		c.OutlineMaxLevel = 6
	}
	if c.OutlineMinLevel > c.OutlineMaxLevel {
		warnings = append(warnings, fmt.Sprintf(
			"outline_min_level (%d) > outline_max_level (%d), swapping",
			c.OutlineMinLevel, c.OutlineMaxLevel))
		c.OutlineMinLevel, c.OutlineMaxLevel = c.OutlineMaxLevel, c.OutlineMinLevel
	}

	// ManifestFilename
	if c.ManifestFilename == "" {
		c.ManifestFilename = "site_manifest.yaml"
	}

	// Search settings
	c.validateSearchSettings(&warnings)

	// Sections must exist for a build to mean anything
	if len(c.Sections) == 0 {
		return warnings, fmt.Errorf("%w: no sections configured", utils.ErrConfigValidation)
	}

	return warnings, nil
}

// validateSearchSettings applies defaults to search index settings.
func (c *AppConfig) validateSearchSettings(warnings *[]string) {
	s := &c.Search
	if s.TokenizerEncoding == "" {
		s.TokenizerEncoding = "cl100k_base"
	}
	if s.MaxChunkSize <= 0 {
		s.MaxChunkSize = 512
	}
	// Nil means unset; an explicit 0 disables overlap and is kept as-is.
	if s.ChunkOverlap == nil {
		defaultOverlap := 50
		s.ChunkOverlap = &defaultOverlap
	}
	if *s.ChunkOverlap < 0 {
		*warnings = append(*warnings, "search.chunk_overlap cannot be negative, setting to 0")
		*s.ChunkOverlap = 0
	}
	if *s.ChunkOverlap >= s.MaxChunkSize {
		*warnings = append(*warnings, fmt.Sprintf(
			"search.chunk_overlap (%d) >= max_chunk_size (%d), reducing overlap",
			*s.ChunkOverlap, s.MaxChunkSize))
		*s.ChunkOverlap = s.MaxChunkSize / 4
	}
	if s.IndexFilename == "" {
		s.IndexFilename = "search_index.json"
	}
}

// Validate checks SectionConfig fields and applies defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place.
func (c *SectionConfig) Validate() (warnings []string, err error) {
	// Required: Kind
	switch c.Kind {
	case SectionKindArticles, SectionKindSlides:
	case "":
		warnings = append(warnings, "section kind not specified, defaulting to 'articles'")
		c.Kind = SectionKindArticles
	default:
		return nil, fmt.Errorf("%w: unknown section kind '%s'", utils.ErrConfigValidation, c.Kind)
	}

	// Required: SourceDir
	if c.SourceDir == "" {
		return nil, fmt.Errorf("%w: section needs source_dir", utils.ErrConfigValidation)
	}

	// Outline overrides (pointers)
	if c.OutlineMinLevel != nil && (*c.OutlineMinLevel < 1 || *c.OutlineMinLevel > 6) {
		warnings = append(warnings, "section outline_min_level out of [1,6], ignoring override")
		c.OutlineMinLevel = nil
	}
	if c.OutlineMaxLevel != nil && (*c.OutlineMaxLevel < 1 || *c.OutlineMaxLevel > 6) {
		warnings = append(warnings, "section outline_max_level out of [1,6], ignoring override")
		c.OutlineMaxLevel = nil
	}

	return warnings, nil
}
