package config

import "sitekit/pkg/utils"

// SectionKind distinguishes how a content section is rendered
type SectionKind string

const (
	SectionKindArticles SectionKind = "articles" // Long-form pages
	SectionKindSlides   SectionKind = "slides"   // Slide decks with tracked reading progress
)

// SectionConfig holds configuration specific to a single content section
type SectionConfig struct {
	Kind            SectionKind `yaml:"kind"`                        // "articles" or "slides"
	SourceDir       string      `yaml:"source_dir"`                  // Subdirectory of content_dir holding markdown sources
	Title           string      `yaml:"title,omitempty"`             // Display title (defaults to section key)
	OutlineMinLevel *int        `yaml:"outline_min_level,omitempty"` // Override for global outline depth (nil = inherit)
	OutlineMaxLevel *int        `yaml:"outline_max_level,omitempty"` // Override for global outline depth (nil = inherit)
	SkipSearchIndex *bool       `yaml:"skip_search_index,omitempty"` // Exclude this section from the search index (nil = inherit)
}

// SearchConfig holds settings for search indexing
type SearchConfig struct {
	TokenizerEncoding string `yaml:"tokenizer_encoding,omitempty"` // tiktoken encoding name, e.g. "cl100k_base"
	MaxChunkSize      int    `yaml:"max_chunk_size,omitempty"`     // Maximum chunk size in tokens
	ChunkOverlap      *int   `yaml:"chunk_overlap,omitempty"`      // Overlap between chunks in tokens (nil = default; 0 is a valid explicit setting)
	IndexFilename     string `yaml:"index_filename,omitempty"`     // Index file name within state_dir
}

// AppConfig holds the global application configuration
type AppConfig struct {
	SiteTitle       string                   `yaml:"site_title"`
	ContentDir      string                   `yaml:"content_dir"`                // Root directory of markdown sources
	OutputDir       string                   `yaml:"output_dir"`                 // Root directory for built HTML pages
	StateDir        string                   `yaml:"state_dir"`                  // Progress DB and search index live here
	NumWorkers      int                      `yaml:"num_workers"`                // Concurrent page builds
	OutlineMinLevel int                      `yaml:"outline_min_level,omitempty"` // Default minimum heading level in TOCs
	OutlineMaxLevel int                      `yaml:"outline_max_level,omitempty"` // Default maximum heading level in TOCs
	SkipSearchIndex bool                     `yaml:"skip_search_index,omitempty"`
	ManifestFilename string                  `yaml:"manifest_filename,omitempty"` // Site manifest name within output_dir
	Search          SearchConfig             `yaml:"search,omitempty"`
	Sections        map[string]SectionConfig `yaml:"sections"`
}

// Section returns the configuration for a section key.
// Returns utils.ErrUnknownSection when the key is not configured.
func (c *AppConfig) Section(key string) (SectionConfig, error) {
	sectionCfg, ok := c.Sections[key]
	if !ok {
		return SectionConfig{}, utils.WrapErrorf(utils.ErrUnknownSection, "'%s'", key)
	}
	return sectionCfg, nil
}

// GetEffectiveOutlineMinLevel determines the effective minimum outline level
func GetEffectiveOutlineMinLevel(sectionCfg SectionConfig, appCfg AppConfig) int {
	if sectionCfg.OutlineMinLevel != nil {
		return *sectionCfg.OutlineMinLevel
	}
	return appCfg.OutlineMinLevel
}

// GetEffectiveOutlineMaxLevel determines the effective maximum outline level
func GetEffectiveOutlineMaxLevel(sectionCfg SectionConfig, appCfg AppConfig) int {
	if sectionCfg.OutlineMaxLevel != nil {
		return *sectionCfg.OutlineMaxLevel
	}
	return appCfg.OutlineMaxLevel
}

// GetEffectiveSkipSearchIndex determines whether a section is excluded from the search index
func GetEffectiveSkipSearchIndex(sectionCfg SectionConfig, appCfg AppConfig) bool {
	if sectionCfg.SkipSearchIndex != nil {
		return *sectionCfg.SkipSearchIndex
	}
	return appCfg.SkipSearchIndex
}

// GetEffectiveSectionTitle determines the display title for a section.
// Falls back to the section key when no title is configured.
func GetEffectiveSectionTitle(sectionKey string, sectionCfg SectionConfig) string {
	if sectionCfg.Title != "" {
		return sectionCfg.Title
	}
	return sectionKey
}
