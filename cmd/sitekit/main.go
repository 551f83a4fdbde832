package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"sitekit/pkg/config"
	"sitekit/pkg/outline"
	"sitekit/pkg/progress"
	"sitekit/pkg/render"
	"sitekit/pkg/search"
	"sitekit/pkg/site"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "outline":
		runOutline(os.Args[2:])
	case "toc":
		runToc(os.Args[2:])
	case "search":
		runSearch(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "progress":
		runProgress(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "list-sections":
		runListSections(os.Args[2:])
	case "mcp-server":
		runMcpServer(os.Args[2:])
	case "version":
		fmt.Printf("sitekit %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `sitekit - Content site builder with outline extraction

Usage:
  sitekit <command> [options]

Commands:
  build          Build the site from configured content sections
  outline        Extract the heading outline of a document
  toc            Generate a table of contents for a document
  search         Search the built site's content index
  export         Convert an HTML page back to Markdown
  progress       Inspect or record slide deck reading progress
  validate       Validate configuration file
  list-sections  List configured content sections
  mcp-server     Start MCP server for AI tool integration
  version        Show version info

Run 'sitekit <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the config file
func loadConfig(path string) (*config.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg config.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// setupLogger creates a configured logrus.Logger with the given log level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}

	return log
}

// loadAndValidateConfig loads the config file, validates it, and logs warnings.
func loadAndValidateConfig(configFile string, log *logrus.Logger) *config.AppConfig {
	log.Infof("Loading configuration from %s", configFile)
	appCfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	appWarnings, err := appCfg.Validate()
	for _, w := range appWarnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	return appCfg
}

// validateSectionConfigs validates each section in place and logs warnings.
func validateSectionConfigs(appCfg *config.AppConfig, log *logrus.Logger) {
	for key, sectionCfg := range appCfg.Sections {
		sectionWarnings, err := sectionCfg.Validate()
		if err != nil {
			log.Fatalf("Section '%s' configuration error: %v", key, err)
		}
		for _, w := range sectionWarnings {
			log.Warnf("[%s] %s", key, w)
		}
		appCfg.Sections[key] = sectionCfg
	}
}

// readInput reads a document from a file, or from stdin when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// documentOutline runs the full outline pipeline on a document: render (for
// markdown input), extract, deduplicate anchors, filter to the level window.
func documentOutline(src []byte, format string, minLevel, maxLevel int) ([]outline.FlatHeading, error) {
	markup := string(src)
	if format == "markdown" {
		rendered, err := render.Markdown(src)
		if err != nil {
			return nil, err
		}
		markup = rendered
	} else if format != "html" {
		return nil, fmt.Errorf("unknown input format %q (supported: markdown, html)", format)
	}

	flat, err := outline.ExtractHeadings(markup)
	if err != nil {
		return nil, err
	}
	resolved := outline.EnsureUniqueIDs(flat)
	return outline.FilterByLevel(resolved, minLevel, maxLevel), nil
}

// runBuild handles the build subcommand
func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit build [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	executeBuild(*configFile, *logLevel)
}

// executeBuild contains the main build logic
func executeBuild(configFile, logLevelStr string) {
	log := setupLogger(logLevelStr)
	appCfg := loadAndValidateConfig(configFile, log)
	validateSectionConfigs(appCfg, log)

	log.Infof("Site: '%s', Sections: %d, Workers: %d", appCfg.SiteTitle, len(appCfg.Sections), appCfg.NumWorkers)
	log.Infof("Dirs: content=%s output=%s state=%s", appCfg.ContentDir, appCfg.OutputDir, appCfg.StateDir)

	// Token counting makes chunk sizes match the configured budget. Chunking
	// falls back to character lengths when the encoding is unavailable.
	if err := search.InitTokenizer(appCfg.Search.TokenizerEncoding); err != nil {
		log.Warnf("Tokenizer init failed (%v), chunk sizes will use character counts", err)
	}

	buildCtx, cancelBuild := context.WithCancel(context.Background())
	defer cancelBuild()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelBuild()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()

	builder := site.NewBuilder(appCfg, log.WithField("component", "build"))
	manifest, err := builder.Run(buildCtx)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Build cancelled gracefully.")
			os.Exit(0)
		}
		log.Errorf("Build finished with error: %v", err)
		os.Exit(1)
	}

	manifestPath := filepath.Join(appCfg.OutputDir, appCfg.ManifestFilename)
	if err := manifest.Write(manifestPath); err != nil {
		log.Errorf("Failed to write manifest: %v", err)
		os.Exit(1)
	}
	log.Infof("Wrote manifest with %d pages to %s", len(manifest.Pages), manifestPath)

	indexPath := filepath.Join(appCfg.StateDir, appCfg.Search.IndexFilename)
	if err := builder.Index().Save(indexPath); err != nil {
		log.Errorf("Failed to write search index: %v", err)
		os.Exit(1)
	}
	log.Infof("Wrote search index with %d documents to %s", builder.Index().Len(), indexPath)

	log.Info("Build completed successfully.")
}

// runOutline handles the outline subcommand
func runOutline(args []string) {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	input := fs.String("input", "", "Input file (default: stdin)")
	format := fs.String("format", "markdown", "Input format (markdown, html)")
	minLevel := fs.Int("min-level", 1, "Minimum heading level to include")
	maxLevel := fs.Int("max-level", 6, "Maximum heading level to include")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit outline [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sitekit outline -input docs/guide.md\n")
		fmt.Fprintf(os.Stderr, "  cat page.html | sitekit outline -format html -max-level 3\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doOutline(*input, *format, *minLevel, *maxLevel, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doOutline extracts an outline and prints it as JSON.
// Returns exit code (0 = success, 1 = error).
func doOutline(inputPath, format string, minLevel, maxLevel int, stdout, stderr io.Writer) int {
	src, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	filtered, err := documentOutline(src, format, minLevel, maxLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out := struct {
		Headings []outline.FlatHeading `json:"headings"`
		Outline  []*outline.Heading    `json:"outline"`
	}{
		Headings: filtered,
		Outline:  outline.BuildTree(filtered),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(data))
	return 0
}

// runToc handles the toc subcommand
func runToc(args []string) {
	fs := flag.NewFlagSet("toc", flag.ExitOnError)
	input := fs.String("input", "", "Input file (default: stdin)")
	format := fs.String("format", "markdown", "Input format (markdown, html)")
	output := fs.String("output", "markdown", "Output format (markdown, html)")
	minLevel := fs.Int("min-level", 1, "Minimum heading level to include")
	maxLevel := fs.Int("max-level", 6, "Maximum heading level to include")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit toc [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sitekit toc -input docs/guide.md\n")
		fmt.Fprintf(os.Stderr, "  sitekit toc -input docs/guide.md -output html -max-level 2\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doToc(*input, *format, *output, *minLevel, *maxLevel, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doToc generates a table of contents for a document.
// Returns exit code (0 = success, 1 = error).
func doToc(inputPath, format, output string, minLevel, maxLevel int, stdout, stderr io.Writer) int {
	src, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	filtered, err := documentOutline(src, format, minLevel, maxLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	tree := outline.BuildTree(filtered)

	switch output {
	case "markdown":
		fmt.Fprint(stdout, render.TOCMarkdown(tree))
	case "html":
		fmt.Fprintln(stdout, render.TOCHTML(tree))
	default:
		fmt.Fprintf(stderr, "Error: unknown output format %q (supported: markdown, html)\n", output)
		return 1
	}
	return 0
}

// runSearch handles the search subcommand
func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	maxResults := fs.Int("max", 10, "Maximum number of results")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit search [options] <query>\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sitekit search install\n")
		fmt.Fprintf(os.Stderr, "  sitekit search -max 5 getting started\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: search query is required")
		fs.Usage()
		os.Exit(1)
	}

	exitCode := doSearch(*configFile, query, *maxResults, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doSearch queries the built site's index and prints results.
// Returns exit code (0 = success, 1 = error).
func doSearch(configPath, query string, maxResults int, stdout, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := appCfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	indexPath := filepath.Join(appCfg.StateDir, appCfg.Search.IndexFilename)
	idx, err := search.LoadIndex(indexPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading search index from %s: %v (run 'sitekit build' first)\n", indexPath, err)
		return 1
	}

	results := idx.Search(query, maxResults)
	if len(results) == 0 {
		fmt.Fprintf(stdout, "No results for %q.\n", query)
		return 0
	}

	fmt.Fprintf(stdout, "%d result(s) for %q:\n\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(stdout, "%d. %s (%s)\n", i+1, r.Title, r.Path)
		fmt.Fprintf(stdout, "   section: %s, match: %s, score: %d\n", r.Section, r.MatchLocation, r.Score)
		if r.Snippet != "" {
			fmt.Fprintf(stdout, "   %s\n", r.Snippet)
		}
		fmt.Fprintln(stdout)
	}
	return 0
}

// runExport handles the export subcommand
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	input := fs.String("input", "", "Input HTML file (default: stdin)")
	output := fs.String("output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit export [options]\n\nConverts an HTML page back to Markdown.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doExport(*input, *output, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doExport converts an HTML document to Markdown.
// Returns exit code (0 = success, 1 = error).
func doExport(inputPath, outputPath string, stdout, stderr io.Writer) int {
	src, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	markdown, err := render.ExportMarkdown(string(src))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if outputPath == "" {
		fmt.Fprintln(stdout, markdown)
		return 0
	}
	if err := os.WriteFile(outputPath, []byte(markdown+"\n"), 0644); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runProgress handles the progress subcommand and its actions
func runProgress(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, `Usage: sitekit progress <get|set|list|reset> [options]`)
		os.Exit(1)
	}

	switch args[0] {
	case "get":
		runProgressGet(args[1:])
	case "set":
		runProgressSet(args[1:])
	case "list":
		runProgressList(args[1:])
	case "reset":
		runProgressReset(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown progress action: %s (supported: get, set, list, reset)\n", args[0])
		os.Exit(1)
	}
}

// openProgressStore loads config and opens the progress database.
func openProgressStore(configPath string, stderr io.Writer) (progress.Store, int) {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, 1
	}
	if _, err := appCfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, 1
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)

	store, err := progress.NewBadgerStore(appCfg.StateDir, log.WithField("component", "progress"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: opening progress store: %v\n", err)
		return nil, 1
	}
	return store, 0
}

func runProgressGet(args []string) {
	fs := flag.NewFlagSet("progress get", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	deckID := fs.String("deck", "", "Deck identifier (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *deckID == "" {
		fmt.Fprintln(os.Stderr, "Error: -deck is required")
		os.Exit(1)
	}

	store, code := openProgressStore(*configFile, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
	defer store.Close()

	rec, err := store.Get(*deckID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printProgress(os.Stdout, *rec)
}

func runProgressSet(args []string) {
	fs := flag.NewFlagSet("progress set", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	deckID := fs.String("deck", "", "Deck identifier (required)")
	slide := fs.Int("slide", -1, "Zero-based slide index (required)")
	count := fs.Int("count", 0, "Total slides in the deck (0 if unknown)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *deckID == "" || *slide < 0 {
		fmt.Fprintln(os.Stderr, "Error: -deck and -slide are required")
		os.Exit(1)
	}

	store, code := openProgressStore(*configFile, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
	defer store.Close()

	rec, err := store.Set(*deckID, *slide, *count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printProgress(os.Stdout, *rec)
}

func runProgressList(args []string) {
	fs := flag.NewFlagSet("progress list", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	store, code := openProgressStore(*configFile, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No progress recorded.")
		return
	}
	for _, rec := range records {
		printProgress(os.Stdout, rec)
		fmt.Println()
	}
}

func runProgressReset(args []string) {
	fs := flag.NewFlagSet("progress reset", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	deckID := fs.String("deck", "", "Deck identifier (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *deckID == "" {
		fmt.Fprintln(os.Stderr, "Error: -deck is required")
		os.Exit(1)
	}

	store, code := openProgressStore(*configFile, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
	defer store.Close()

	if err := store.Reset(*deckID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Progress reset for deck '%s'.\n", *deckID)
}

// printProgress writes a progress record in a human-readable form.
func printProgress(w io.Writer, rec progress.DeckProgress) {
	fmt.Fprintf(w, "  %s\n", rec.DeckID)
	fmt.Fprintf(w, "    Slide: %d", rec.SlideIndex+1)
	if rec.SlideCount > 0 {
		fmt.Fprintf(w, " of %d (%.0f%%)", rec.SlideCount, rec.PercentComplete())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    Session: %s\n", rec.SessionID)
	fmt.Fprintf(w, "    Updated: %s\n", rec.UpdatedAt.Format(time.RFC3339))
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	sectionKey := fs.String("section", "", "Section key to validate (optional, validates all if empty)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doValidate(*configFile, *sectionKey, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath, sectionKey string, stdout, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	if sectionKey != "" {
		sectionCfg, err := appCfg.Section(sectionKey)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		sectionWarnings, err := sectionCfg.Validate()
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: [%s] %v\n", sectionKey, err)
			return 1
		}
		for _, w := range sectionWarnings {
			fmt.Fprintf(stdout, "WARN: [%s] %s\n", sectionKey, w)
		}
		fmt.Fprintf(stdout, "OK: Section '%s' configuration is valid\n", sectionKey)
	} else {
		hasError := false
		keys := make([]string, 0, len(appCfg.Sections))
		for k := range appCfg.Sections {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			sectionCfg := appCfg.Sections[key]
			sectionWarnings, err := sectionCfg.Validate()
			if err != nil {
				fmt.Fprintf(stderr, "ERROR: [%s] %v\n", key, err)
				hasError = true
				continue
			}
			for _, w := range sectionWarnings {
				fmt.Fprintf(stdout, "WARN: [%s] %s\n", key, w)
			}
			fmt.Fprintf(stdout, "OK: [%s]\n", key)
		}
		if hasError {
			return 1
		}
	}

	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return 0
}

// runListSections handles the list-sections subcommand
func runListSections(args []string) {
	fs := flag.NewFlagSet("list-sections", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sitekit list-sections [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doListSections(*configFile, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doListSections lists sections and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doListSections(configPath string, stdout, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := appCfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	keys := make([]string, 0, len(appCfg.Sections))
	for k := range appCfg.Sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(stdout, "Sections in %s:\n\n", configPath)
	for _, key := range keys {
		sectionCfg := appCfg.Sections[key]
		fmt.Fprintf(stdout, "  %s\n", key)
		fmt.Fprintf(stdout, "    Title: %s\n", config.GetEffectiveSectionTitle(key, sectionCfg))
		kind := sectionCfg.Kind
		if kind == "" {
			kind = config.SectionKindArticles
		}
		fmt.Fprintf(stdout, "    Kind: %s\n", kind)
		fmt.Fprintf(stdout, "    Source: %s\n", sectionCfg.SourceDir)
		fmt.Fprintf(stdout, "    Outline Levels: %d-%d\n",
			config.GetEffectiveOutlineMinLevel(sectionCfg, *appCfg),
			config.GetEffectiveOutlineMaxLevel(sectionCfg, *appCfg))
		if config.GetEffectiveSkipSearchIndex(sectionCfg, *appCfg) {
			fmt.Fprintln(stdout, "    Search Index: skipped")
		}
		fmt.Fprintln(stdout)
	}
	return 0
}
