// Package main is the InsightExus site server and CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/insightexus/site/internal/cli"
	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/contact"
	"github.com/insightexus/site/internal/content"
	"github.com/insightexus/site/internal/models"
	"github.com/insightexus/site/internal/search"
	"github.com/insightexus/site/internal/server"
	"github.com/insightexus/site/internal/sitemap"
	"github.com/insightexus/site/internal/storage"
	"github.com/insightexus/site/internal/watcher"
	"github.com/insightexus/site/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/insightexus/config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if present, and a missing default file falls back to
// built-in defaults plus environment overrides.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, "", err
	}
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyEnv(cfg)
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "sitemap":
		runSitemap()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("insightexus version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (content reloads, search queries, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(utils.LoggerOptions{Debug: debugMode, Component: "server"})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("content_dir", cfg.Content.Directory),
		zap.Bool("debug", debugMode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open inquiry storage", zap.Error(err))
	}
	defer store.Close()

	svc := contact.NewService(
		contact.NewSMTPMailer(cfg.Mail),
		cfg.Mail,
		cfg.Contact,
		contact.WithStore(store),
		contact.WithLogger(logger),
	)

	if cfg.Content.WatchOrDefault() {
		catalog := components.Catalog
		watchSvc := watcher.NewWatcher(
			cfg.Content.Directory,
			[]string{".json"},
			func(ctx context.Context) {
				if err := catalog.Reload(ctx); err != nil {
					logger.Warn("content reload failed, keeping previous snapshot", zap.Error(err))
				}
			},
			watcher.WithLogger(logger),
		)
		if err := watchSvc.Start(ctx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(
		components.Engine,
		components.Catalog,
		cfg,
		logger,
		server.WithContact(svc),
		server.WithInquiryStore(store),
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: insightexus search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
By default the search is the site's quick search: a case-insensitive substring match
over titles, summaries, categories, and tags, capped at five results.
  • Use --fulltext for ranked full-text search (typo tolerant with --fuzzy).
  • Use --server "" to search the content directory directly without a running server.

Examples:
  insightexus search cloud migration
  insightexus search --fulltext --fuzzy migraton
  insightexus search --output json "data platform"
`)
}

// buildSearchQuery joins positional args with spaces. The result is not trimmed:
// quick search matches the query exactly as typed.
func buildSearchQuery(args []string) string {
	return strings.Join(args, " ")
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = search the content directory directly)")
	fulltext := fs.Bool("fulltext", false, "use ranked full-text search instead of quick search")
	limit := fs.Int("limit", 0, "number of full-text results (0 = server default)")
	fuzzyEnabled := fs.Bool("fuzzy", false, "enable fuzzy matching for full-text search")
	kind := fs.String("kind", "", "restrict full-text results to blog, project, or service")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	query := &models.SearchQuery{
		Query:        buildSearchQuery(fs.Args()),
		Limit:        *limit,
		FuzzyEnabled: *fuzzyEnabled,
	}
	if *kind != "" {
		k, err := models.ParseKind(*kind)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		query.Kind = k
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		// The server already holds the index; avoids reloading content per query.
		response, err = searchViaHTTP(*serverURL, query, *fulltext)
	} else {
		response, err = searchDirect(*configPath, query, *fulltext)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(configPath string, query *models.SearchQuery, fulltext bool) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(utils.LoggerOptions{Debug: cfg.Debug, Component: "search", Quiet: true})
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	if !fulltext {
		return components.Engine.Quick(query.Query), nil
	}
	return components.Engine.FullText(ctx, query)
}

func searchViaHTTP(serverURL string, query *models.SearchQuery, fulltext bool) (*models.SearchResponse, error) {
	params := url.Values{"q": {query.Query}}
	endpoint := "/api/v1/search"
	if fulltext {
		endpoint = "/api/v1/search/fulltext"
		if query.Limit > 0 {
			params.Set("limit", fmt.Sprint(query.Limit))
		}
		if query.FuzzyEnabled {
			params.Set("fuzzy", "true")
		}
		if query.Kind != "" {
			params.Set("kind", string(query.Kind))
		}
	}
	var response models.SearchResponse
	if err := getJSON(serverURL+endpoint+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func getJSON(target string, v interface{}) error {
	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func runSitemap() {
	fs := flag.NewFlagSet("sitemap", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	out := fs.String("out", "", "output file (default: stdout)")
	baseURL := fs.String("base-url", "", "site URL (default: site.url from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(utils.LoggerOptions{Debug: cfg.Debug, Component: "sitemap", Quiet: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	site := cfg.Site.URL
	if *baseURL != "" {
		site = *baseURL
	}
	set := sitemap.NewGenerator(site, content.NewLoader(cfg.Content.Directory), logger).Generate()

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if _, err := set.WriteTo(w); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write sitemap: %v\n", err)
		os.Exit(1)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d URLs to %s\n", len(set.URLs), *out)
	}
}

// statusContent is the content section of GET /api/v1/status.
type statusContent struct {
	Directory   string    `json:"directory"`
	Loaded      bool      `json:"loaded"`
	LoadedAt    time.Time `json:"loaded_at"`
	Articles    int       `json:"articles"`
	CaseStudies int       `json:"case_studies"`
	Offerings   int       `json:"offerings"`
	Skipped     int       `json:"skipped"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Records        int                            `json:"records"`
	RecordsByKind  map[string]int                 `json:"records_by_kind"`
	Content        statusContent                  `json:"content"`
	IndexBuiltAt   time.Time                      `json:"index_built_at"`
	FullTextDocs   uint64                         `json:"fulltext_documents"`
	UptimeSeconds  int64                          `json:"uptime_seconds,omitempty"`
	Inquiries      map[models.InquiryStatus]int64 `json:"inquiries,omitempty"`
	DiskUsageBytes *int64                         `json:"disk_usage_bytes,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the content directory directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		res, err := statusDirect(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, &status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusDirect(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(utils.LoggerOptions{Debug: cfg.Debug, Component: "status", Quiet: true})
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	snap := components.Catalog.Snapshot()
	byKind := make(map[string]int)
	for k, n := range components.Engine.Index().CountByKind() {
		byKind[string(k)] = n
	}
	status := &statusResponse{
		Records:       components.Engine.Index().Len(),
		RecordsByKind: byKind,
		Content: statusContent{
			Directory:   components.Catalog.Dir(),
			Loaded:      components.Catalog.Loaded(),
			LoadedAt:    snap.LoadedAt,
			Articles:    len(snap.Articles),
			CaseStudies: len(snap.CaseStudies),
			Offerings:   len(snap.Offerings),
			Skipped:     snap.Skipped,
		},
		IndexBuiltAt: components.Engine.BuiltAt(),
	}
	if docs, err := components.Engine.FullTextDocCount(); err == nil {
		status.FullTextDocs = docs
	}
	if diskBytes, err := storage.DiskUsageBytes(cfg.Content.Directory, cfg.Storage.DatabasePath); err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

func writeStatusText(w io.Writer, status *statusResponse) {
	fmt.Fprintf(w, "records:            %d   # searchable records\n", status.Records)
	for _, kind := range []models.Kind{models.KindArticle, models.KindCaseStudy, models.KindOffering} {
		fmt.Fprintf(w, "  %-17s %d\n", string(kind)+":", status.RecordsByKind[string(kind)])
	}
	fmt.Fprintf(w, "fulltext_documents: %d   # records in the ranked index\n", status.FullTextDocs)
	fmt.Fprintf(w, "content_dir:        %s\n", status.Content.Directory)
	fmt.Fprintf(w, "articles:           %d\n", status.Content.Articles)
	fmt.Fprintf(w, "case_studies:       %d\n", status.Content.CaseStudies)
	fmt.Fprintf(w, "offerings:          %d\n", status.Content.Offerings)
	if status.Content.Skipped > 0 {
		fmt.Fprintf(w, "skipped:            %d   # malformed entries\n", status.Content.Skipped)
	}
	if !status.Content.LoadedAt.IsZero() {
		fmt.Fprintf(w, "loaded_at:          %s\n", status.Content.LoadedAt.Format(time.RFC3339))
	}
	if len(status.Inquiries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# inquiries")
		for _, st := range []models.InquiryStatus{models.InquiryPending, models.InquirySent, models.InquiryFailed} {
			fmt.Fprintf(w, "%-19s %d\n", string(st)+":", status.Inquiries[st])
		}
	}
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # content + inquiry database\n", *status.DiskUsageBytes)
	}
}

// Components holds the content catalog and the search engine fed by it.
type Components struct {
	Catalog *content.Catalog
	Engine  *search.Engine
}

func (c *Components) Close() {
	if c.Engine != nil {
		_ = c.Engine.Close()
	}
}

// initializeComponents loads the content directory and builds the search indexes.
// Every later catalog reload rebuilds the indexes.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	engine := search.NewEngine(&cfg.Search, logger)
	catalog := content.NewCatalog(cfg.Content.Directory, content.WithLogger(logger))
	if err := catalog.Subscribe(ctx, func(ctx context.Context, snap *content.Snapshot) error {
		return engine.Rebuild(ctx, snap.Collections())
	}); err != nil {
		_ = engine.Close()
		return nil, err
	}
	if err := catalog.Reload(ctx); err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return &Components{Catalog: catalog, Engine: engine}, nil
}

func printUsage() {
	fmt.Println(`insightexus - InsightExus site content server

Usage:
  insightexus server [flags]           Start the HTTP server
  insightexus search [flags] <query>   Search articles, case studies, and services
  insightexus sitemap [flags]          Write sitemap.xml
  insightexus status [flags]           Show content and index status
  insightexus version                  Show version
  insightexus help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/insightexus/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" to search the content directory directly.
  --fulltext         Ranked full-text search instead of quick search
  --limit int        Number of full-text results
  --fuzzy            Enable fuzzy matching for full-text search
  --kind string      Restrict full-text results to blog, project, or service
  --output string    Output format: text, compact, or json (default: text)

Sitemap Flags:
  --config string    Config file path
  --out string       Output file (default: stdout)
  --base-url string  Site URL (default: site.url from config)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use --server "" for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  insightexus server
  insightexus search cloud
  insightexus search --fulltext --fuzzy "data platfrom"
  insightexus sitemap --out public/sitemap.xml
  insightexus status --output json`)
}
