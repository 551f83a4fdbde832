package site

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sitekit/pkg/utils"
)

// PageRecord holds manifest metadata for a single built page.
type PageRecord struct {
	Section      string    `yaml:"section"`
	SourceFile   string    `yaml:"source_file"`
	OutputFile   string    `yaml:"output_file"` // Relative to output_dir, forward slashes
	Title        string    `yaml:"title,omitempty"`
	HeadingCount int       `yaml:"heading_count,omitempty"`
	SlideCount   int       `yaml:"slide_count,omitempty"` // Slides sections only
	ContentHash  string    `yaml:"content_hash,omitempty"`
	BuiltAt      time.Time `yaml:"built_at"`
}

// Manifest holds all metadata for a single site build.
type Manifest struct {
	SiteTitle       string       `yaml:"site_title"`
	BuildStartTime  time.Time    `yaml:"build_start_time"`
	BuildEndTime    time.Time    `yaml:"build_end_time"`
	TotalPagesBuilt int          `yaml:"total_pages_built"`
	Pages           []PageRecord `yaml:"pages"`
}

// NewManifest creates an empty manifest for a build starting now.
func NewManifest(siteTitle string, start time.Time) *Manifest {
	return &Manifest{
		SiteTitle:      siteTitle,
		BuildStartTime: start,
		Pages:          make([]PageRecord, 0),
	}
}

// Write serializes the manifest to path as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: marshaling manifest YAML: %v", utils.ErrParsing, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing manifest '%s': %v", utils.ErrFilesystem, path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest '%s': %v", utils.ErrFilesystem, path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest YAML from '%s': %v", utils.ErrParsing, path, err)
	}
	return &m, nil
}
