package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"findex/internal/database"
	"findex/internal/export"
	"findex/internal/handlers"
	"findex/internal/history"
	"findex/internal/logging"
	"findex/internal/memory"
	"findex/internal/metrics"
	"findex/internal/middleware"
	"findex/internal/scanner"
	"findex/internal/search"
	"findex/internal/startup"
	"findex/internal/tree"
)

const defaultDBName = "index" + database.DBSuffix

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "index":
		runIndex(os.Args[2:])
	case "search":
		runSearch(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "version":
		info := startup.GetBuildInfo()
		fmt.Printf("findex %s (%s, %s, %s/%s)\n",
			info.Version, info.Commit, info.GoVersion, info.OS, info.Arch)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: findex <command> [flags]

Commands:
  index    scan a directory into an index database
  search   query one or more index databases
  serve    run the HTTP API server
  version  print build information

Run 'findex <command> -h' for command flags.
`)
}

func runIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	path := fs.String("path", "", "directory to index (required)")
	dbPath := fs.String("db", defaultDBName, "index database file")
	batchSize := fs.Int("batch-size", 500, "records per transaction")
	noMetadata := fs.Bool("no-metadata", false, "skip mtime/size extraction (faster)")
	workers := fs.Int("workers", 0, "parallel traversal workers (0 = auto)")
	full := fs.Bool("full", false, "delete the database file and rebuild from scratch")
	fs.Parse(args)

	if *path == "" {
		fmt.Fprintln(os.Stderr, "index: -path is required")
		fs.Usage()
		os.Exit(2)
	}

	memory.ConfigureFromEnv()

	if *full {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(*dbPath + suffix); err != nil && !os.IsNotExist(err) {
				logging.Fatal("Removing %s: %v", *dbPath+suffix, err)
			}
		}
	}

	ctx := context.Background()
	db, err := database.New(ctx, *dbPath)
	if err != nil {
		logging.Fatal("Opening database %s: %v", *dbPath, err)
	}
	defer db.Close()

	opts := scanner.DefaultOptions(*path)
	opts.BatchSize = *batchSize
	opts.ExtractMetadata = !*noMetadata
	opts.Workers = *workers

	stats, err := scanner.Scan(ctx, db, opts)
	if err != nil {
		logging.Fatal("Indexing %s: %v", *path, err)
	}

	if err := db.SetMeta(ctx, "last_indexed", time.Now().UTC().Format(time.RFC3339)); err != nil {
		logging.Warn("Recording index time: %v", err)
	}
	if err := db.SetMeta(ctx, "index_duration", stats.Duration.String()); err != nil {
		logging.Warn("Recording index duration: %v", err)
	}

	total, err := db.CountRecords(ctx)
	if err != nil {
		logging.Warn("Counting records: %v", err)
	}

	fmt.Printf("Indexed %d files in %v (%d skipped), %d records total in %s\n",
		stats.Files, stats.Duration.Round(time.Millisecond), stats.Skipped, total, *dbPath)
	for _, p := range stats.SkippedPaths {
		logging.Debug("skipped: %s", p)
	}
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	dbFlag := fs.String("db", ".", "index database file, or directory to discover databases in")
	limit := fs.Int("limit", search.DefaultMaxResults, "max results (0 = unlimited)")
	asTree := fs.Bool("tree", false, "print results as a path tree")
	nameOnly := fs.Bool("name-only", true, "match file names only (false matches full paths)")
	caseSensitive := fs.Bool("case-sensitive", false, "exact-case matching")
	rootName := fs.String("root-name", "", "display name for the tree root")
	rewriteRoot := fs.String("rewrite-root", "", "rewrite result paths onto this root")
	delimFlag := fs.String("delims", "", "comma-separated delimiter tokens (default ; ； space , ， tab)")
	exportPath := fs.String("export", "", "write per-keyword results to this YAML file")
	fs.Parse(args)

	delims := search.DefaultDelimiters()
	if *delimFlag != "" {
		var err error
		delims, err = search.NewDelimiters(strings.Split(*delimFlag, ","))
		if err != nil {
			logging.Fatal("%v", err)
		}
	}

	dbPaths := database.Discover([]string{*dbFlag})
	if len(dbPaths) == 0 {
		logging.Fatal("No %s databases found at %s", database.DBSuffix, *dbFlag)
	}
	logging.Debug("Searching %d database(s): %v", len(dbPaths), dbPaths)

	cfg := search.Config{
		MaxResults:    *limit,
		SearchInPath:  !*nameOnly,
		CaseSensitive: *caseSensitive,
	}

	hist := loadHistory()

	if fs.NArg() == 0 {
		interactiveSearch(dbPaths, cfg, delims, *asTree, *rootName, *rewriteRoot, hist)
		return
	}

	query := strings.Join(fs.Args(), " ")
	results, err := searchDatabases(context.Background(), dbPaths, query, cfg, delims)
	if err != nil {
		logging.Fatal("Search failed: %v", err)
	}
	recordHistory(hist, query, cfg, len(results))

	if *exportPath != "" {
		if err := exportResults(dbPaths, query, cfg, delims, *exportPath); err != nil {
			logging.Fatal("Export failed: %v", err)
		}
		fmt.Printf("Exported to %s\n", *exportPath)
	}

	printResults(results, *asTree, *rootName, *rewriteRoot)
}

func interactiveSearch(dbPaths []string, cfg search.Config, delims search.Delimiters, asTree bool, rootName, rewriteRoot string, hist *history.History) {
	fmt.Println("Interactive search. Empty line or 'exit' to quit.")
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("query> ")
		if !in.Scan() {
			break
		}
		query := strings.TrimSpace(in.Text())
		if query == "" || query == "exit" || query == "quit" {
			break
		}

		results, err := searchDatabases(context.Background(), dbPaths, query, cfg, delims)
		if err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			continue
		}
		recordHistory(hist, query, cfg, len(results))
		printResults(results, asTree, rootName, rewriteRoot)
	}
}

// searchDatabases queries each database in turn, honoring the overall result
// limit across all of them.
func searchDatabases(ctx context.Context, dbPaths []string, query string, cfg search.Config, delims search.Delimiters) ([]search.Result, error) {
	var all []search.Result
	for _, path := range dbPaths {
		remaining := cfg
		if cfg.MaxResults > 0 {
			remaining.MaxResults = cfg.MaxResults - len(all)
			if remaining.MaxResults <= 0 {
				break
			}
		}

		db, err := database.New(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		results, err := search.NewEngine(db).Search(ctx, query, remaining, delims)
		db.Close()
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", path, err)
		}
		all = append(all, results...)
	}
	return all, nil
}

func exportResults(dbPaths []string, query string, cfg search.Config, delims search.Delimiters, path string) error {
	keywords := search.SplitKeywords(query, delims)
	groups := make(map[string][]search.Result, len(keywords))
	for _, kw := range keywords {
		results, err := searchDatabases(context.Background(), dbPaths, kw, cfg, delims)
		if err != nil {
			return err
		}
		groups[kw] = results
	}
	return export.WriteFile(path, export.Build(startup.Version, groups))
}

func printResults(results []search.Result, asTree bool, rootName, rewriteRoot string) {
	if rewriteRoot != "" {
		results = tree.RewriteRoot(results, rewriteRoot)
	}

	if asTree {
		fmt.Print(tree.Render(tree.Build(results, rootName)))
	} else {
		for _, r := range results {
			fmt.Println(r.Path)
		}
	}
	fmt.Printf("%d result(s)\n", len(results))
}

func loadHistory() *history.History {
	path, err := history.DefaultPath()
	if err != nil {
		logging.Debug("History disabled: %v", err)
		return nil
	}
	hist, err := history.Load(path, 0)
	if err != nil {
		logging.Debug("History disabled: %v", err)
		return nil
	}
	return hist
}

func recordHistory(hist *history.History, query string, cfg search.Config, count int) {
	if hist == nil {
		return
	}
	err := hist.Add(history.Entry{
		Query:         query,
		SearchInPath:  cfg.SearchInPath,
		CaseSensitive: cfg.CaseSensitive,
		ResultCount:   count,
	})
	if err != nil {
		logging.Debug("Recording history: %v", err)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbFlag := fs.String("db", "", "index database file (overrides DATABASE_PATH)")
	portFlag := fs.String("port", "", "listen port (overrides PORT)")
	fs.Parse(args)

	startTime := time.Now()

	memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}
	if *dbFlag != "" {
		config.DatabasePath = *dbFlag
	}
	if *portFlag != "" {
		config.Port = *portFlag
	}

	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	historyPath := config.HistoryPath
	if historyPath == "" {
		if p, err := history.DefaultPath(); err == nil {
			historyPath = p
		}
	}
	var hist *history.History
	if historyPath != "" {
		hist, err = history.Load(historyPath, config.HistoryMax)
		if err != nil {
			logging.Warn("History disabled: %v", err)
		}
	}

	var collector *metrics.Collector
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		collector = metrics.NewCollector(db, config.MetricsInterval)
		collector.Start()
	}

	h := handlers.New(db, hist, search.DefaultDelimiters())
	router := setupRouter(h, config.MetricsEnabled)
	startup.LogHTTPRoutes(router)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}
	handler = middleware.Compression()(handler)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv, collector)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", h.Search).Methods("GET")
	api.HandleFunc("/index", h.Index).Methods("POST")
	api.HandleFunc("/stats", h.Stats).Methods("GET")
	api.HandleFunc("/history", h.GetHistory).Methods("GET")
	api.HandleFunc("/history", h.ClearHistory).Methods("DELETE")
	api.HandleFunc("/export", h.Export).Methods("GET")
	api.HandleFunc("/version", h.Version).Methods("GET")

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return r
}

func handleShutdown(srv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if collector != nil {
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
