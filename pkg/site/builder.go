// Package site drives the build pipeline: markdown sources are rendered to
// HTML, their outlines extracted and resolved, anchors stamped, tables of
// contents embedded, and the results written alongside a yaml manifest and a
// search index.
package site

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"sitekit/pkg/config"
	"sitekit/pkg/outline"
	"sitekit/pkg/render"
	"sitekit/pkg/search"
	"sitekit/pkg/utils"
)

// Builder builds all configured sections of the site.
type Builder struct {
	appCfg *config.AppConfig
	log    *logrus.Entry
	index  *search.Index

	sem *semaphore.Weighted // Bounds concurrent page builds

	manifest   *Manifest
	manifestMu sync.Mutex

	errCount atomic.Int64
}

// NewBuilder creates a Builder for the given validated configuration.
func NewBuilder(appCfg *config.AppConfig, logger *logrus.Entry) *Builder {
	return &Builder{
		appCfg: appCfg,
		log:    logger,
		index:  search.NewIndex(),
		sem:    semaphore.NewWeighted(int64(appCfg.NumWorkers)),
	}
}

// Index exposes the search index populated by Run.
func (b *Builder) Index() *search.Index {
	return b.index
}

// Run builds every section and returns the finished manifest. Individual page
// failures are logged and counted but do not abort the build; Run returns an
// error only when no page could be processed at all or the output directory
// cannot be prepared.
func (b *Builder) Run(ctx context.Context) (*Manifest, error) {
	start := time.Now().UTC()
	b.manifest = NewManifest(b.appCfg.SiteTitle, start)

	if err := os.MkdirAll(b.appCfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory '%s': %v", utils.ErrFilesystem, b.appCfg.OutputDir, err)
	}

	// Deterministic section order
	sectionKeys := make([]string, 0, len(b.appCfg.Sections))
	for k := range b.appCfg.Sections {
		sectionKeys = append(sectionKeys, k)
	}
	sort.Strings(sectionKeys)

	var wg sync.WaitGroup
	for _, sectionKey := range sectionKeys {
		sectionCfg := b.appCfg.Sections[sectionKey]
		sources, err := b.collectSources(sectionCfg)
		if err != nil {
			b.log.Errorf("Skipping section '%s': %v", sectionKey, err)
			b.errCount.Add(1)
			continue
		}
		b.log.Infof("Section '%s': %d source file(s)", sectionKey, len(sources))

		for _, src := range sources {
			if err := b.sem.Acquire(ctx, 1); err != nil {
				b.log.Warnf("Stopping build, context done: %v", err)
				wg.Wait()
				return b.finish(), ctx.Err()
			}
			wg.Add(1)
			go func(sectionKey string, sectionCfg config.SectionConfig, srcPath string) {
				defer wg.Done()
				defer b.sem.Release(1)
				if err := b.buildPage(sectionKey, sectionCfg, srcPath); err != nil {
					b.log.WithFields(logrus.Fields{
						"section":        sectionKey,
						"source":         srcPath,
						"error_category": utils.CategorizeError(err),
					}).Errorf("Page build failed: %v", err)
					b.errCount.Add(1)
				}
			}(sectionKey, sectionCfg, src)
		}
	}
	wg.Wait()

	m := b.finish()
	if m.TotalPagesBuilt == 0 && b.errCount.Load() > 0 {
		return m, fmt.Errorf("build produced no pages (%d failure(s))", b.errCount.Load())
	}
	b.log.Infof("Build complete: %d page(s), %d failure(s), took %s",
		m.TotalPagesBuilt, b.errCount.Load(), m.BuildEndTime.Sub(m.BuildStartTime).Round(time.Millisecond))
	return m, nil
}

func (b *Builder) finish() *Manifest {
	b.manifestMu.Lock()
	defer b.manifestMu.Unlock()
	b.manifest.BuildEndTime = time.Now().UTC()
	b.manifest.TotalPagesBuilt = len(b.manifest.Pages)
	sort.Slice(b.manifest.Pages, func(i, j int) bool {
		if b.manifest.Pages[i].Section != b.manifest.Pages[j].Section {
			return b.manifest.Pages[i].Section < b.manifest.Pages[j].Section
		}
		return b.manifest.Pages[i].SourceFile < b.manifest.Pages[j].SourceFile
	})
	return b.manifest
}

// collectSources lists the markdown files of a section in lexical order.
func (b *Builder) collectSources(sectionCfg config.SectionConfig) ([]string, error) {
	dir := filepath.Join(b.appCfg.ContentDir, sectionCfg.SourceDir)
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".md" || ext == ".markdown" {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning '%s': %v", utils.ErrFilesystem, dir, err)
	}
	sort.Strings(sources)
	return sources, nil
}

// buildPage runs the full pipeline for one markdown source.
func (b *Builder) buildPage(sectionKey string, sectionCfg config.SectionConfig, srcPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("%w: reading '%s': %v", utils.ErrFilesystem, srcPath, err)
	}

	contentHTML, err := render.Markdown(src)
	if err != nil {
		return err
	}

	// Outline pipeline: extract, resolve ids over the FULL sequence, then
	// stamp anchors. Depth filtering applies only to the displayed TOC so
	// anchors stay stable regardless of outline depth settings.
	flat, err := outline.ExtractHeadings(contentHTML)
	if err != nil {
		return err
	}
	resolved := outline.EnsureUniqueIDs(flat)

	contentHTML, err = render.ApplyHeadingIDs(contentHTML, resolved)
	if err != nil {
		return err
	}

	minLevel := config.GetEffectiveOutlineMinLevel(sectionCfg, *b.appCfg)
	maxLevel := config.GetEffectiveOutlineMaxLevel(sectionCfg, *b.appCfg)
	tocHTML := render.TOCHTML(outline.BuildTree(outline.FilterByLevel(resolved, minLevel, maxLevel)))

	title := pageTitle(resolved, srcPath)

	outputRel := filepath.Join(sectionKey, utils.SanitizeFilename(stripExt(filepath.Base(srcPath)))+".html")
	outputPath := filepath.Join(b.appCfg.OutputDir, outputRel)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: creating '%s': %v", utils.ErrFilesystem, filepath.Dir(outputPath), err)
	}

	page := composePage(b.appCfg.SiteTitle, title, tocHTML, contentHTML)
	if err := os.WriteFile(outputPath, []byte(page), 0644); err != nil {
		return fmt.Errorf("%w: writing '%s': %v", utils.ErrFilesystem, outputPath, err)
	}

	record := PageRecord{
		Section:      sectionKey,
		SourceFile:   filepath.Base(srcPath),
		OutputFile:   filepath.ToSlash(outputRel),
		Title:        title,
		HeadingCount: len(resolved),
		ContentHash:  utils.CalculateStringSHA256(page),
		BuiltAt:      time.Now().UTC(),
	}
	if sectionCfg.Kind == config.SectionKindSlides {
		// Decks advance on top-level and second-level headings
		record.SlideCount = len(outline.FilterByLevel(resolved, 1, 2))
	}

	if !config.GetEffectiveSkipSearchIndex(sectionCfg, *b.appCfg) {
		b.addToIndex(sectionKey, record, resolved, string(src))
	}

	b.manifestMu.Lock()
	b.manifest.Pages = append(b.manifest.Pages, record)
	b.manifestMu.Unlock()

	b.log.Debugf("Built page: %s -> %s", srcPath, outputPath)
	return nil
}

// addToIndex chunks the markdown source and adds the page to the search index.
// Indexing failures are logged, never fatal to the page build.
func (b *Builder) addToIndex(sectionKey string, record PageRecord, resolved []outline.FlatHeading, markdown string) {
	chunks, err := search.ChunkMarkdown(markdown, b.appCfg.Search)
	if err != nil {
		b.log.Warnf("Chunking failed for '%s', indexing headings only: %v", record.SourceFile, err)
	}
	headingTexts := make([]string, len(resolved))
	for i, h := range resolved {
		headingTexts[i] = h.Text
	}
	b.index.Add(search.Document{
		Path:     record.OutputFile,
		Section:  sectionKey,
		Title:    record.Title,
		Headings: headingTexts,
		Chunks:   chunks,
	})
}

// pageTitle picks the first heading, falling back to the source filename.
func pageTitle(headings []outline.FlatHeading, srcPath string) string {
	if len(headings) > 0 {
		return headings[0].Text
	}
	return stripExt(filepath.Base(srcPath))
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// composePage assembles the final HTML document around the rendered content.
func composePage(siteTitle, pageTitle, tocHTML, contentHTML string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s - %s</title>\n", html.EscapeString(pageTitle), html.EscapeString(siteTitle))
	sb.WriteString("</head>\n<body>\n")
	if tocHTML != "" {
		sb.WriteString("<nav class=\"outline\">\n")
		sb.WriteString(tocHTML)
		sb.WriteString("</nav>\n")
	}
	sb.WriteString("<main>\n")
	sb.WriteString(contentHTML)
	sb.WriteString("\n</main>\n</body>\n</html>\n")
	return sb.String()
}
