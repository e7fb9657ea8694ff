package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/davidkarpay/library-docent/internal/config"
	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/index"
	"github.com/davidkarpay/library-docent/internal/ingest"
	"github.com/davidkarpay/library-docent/internal/library"
	"github.com/davidkarpay/library-docent/internal/snapshot"
	"github.com/davidkarpay/library-docent/internal/storage"
	"github.com/davidkarpay/library-docent/internal/web"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "import":
		runImport(cfg, log, args)
	case "serve":
		runServe(cfg, log, args)
	case "docent":
		runDocent(cfg, log, args)
	case "search":
		runSearch(cfg, args)
	case "stats":
		runStats(cfg)
	case "get":
		if len(args) < 1 {
			fmt.Println("Error: entry ID required")
			fmt.Println("Usage: library-docent get <id>")
			os.Exit(1)
		}
		runGet(cfg, args[0])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Println("library-docent - search and docent API for the learning library")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  library-docent <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import [flags]          Import library.json into the store and search index")
	fmt.Println("  serve [flags]           Start the index-backed search server")
	fmt.Println("  docent [flags]          Start the in-memory docent server")
	fmt.Println("  search [flags] <query>  Search from the command line")
	fmt.Println("  stats                   Show store and index statistics")
	fmt.Println("  get <id>                Print one entry as JSON")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  LIBRARY_DATA_DIR        Directory for database and index files (default: ./data)")
	fmt.Println("  LIBRARY_JSON            Path to library.json (default: ./library.json)")
	fmt.Println("  LIBRARY_URL             Published library.json URL (docent command)")
	fmt.Println("  LIBRARY_HOST/PORT       Bind address (default: 127.0.0.1:5000)")
	fmt.Println("  LIBRARY_SNAPSHOT_TTL    Docent snapshot freshness window (default: 5m)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  library-docent import -library ./library.json")
	fmt.Println("  library-docent serve -port 5000")
	fmt.Println("  library-docent docent -library-url https://library.example.com/library.json")
	fmt.Println("  library-docent search kubernetes security")
}

func openStoreAndIndex(cfg config.Config) (*storage.DB, *index.Index, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := storage.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}
	idx, err := index.Open(cfg.IndexPath())
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, idx, nil
}

func loadLibrary(ctx context.Context, source string) (*library.Library, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return library.NewClient(source).Fetch(ctx)
	}
	return library.Load(source)
}

func runImport(cfg config.Config, log zerolog.Logger, args []string) {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	libSource := flags.String("library", cfg.LibraryPath, "library.json path or URL")
	transcripts := flags.String("transcripts", cfg.TranscriptsDir, "transcript markdown directory")
	papers := flags.String("papers", cfg.PapersDir, "paper markdown directory")
	flags.Parse(args)

	ctx := context.Background()

	lib, err := loadLibrary(ctx, *libSource)
	if err != nil {
		log.Fatal().Err(err).Msg("load library")
	}

	db, idx, err := openStoreAndIndex(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer db.Close()
	defer idx.Close()

	importer := ingest.NewImporter(db, idx, log)
	importer.TranscriptsDir = *transcripts
	importer.PapersDir = *papers

	stats, err := importer.Run(ctx, lib)
	if err != nil {
		log.Fatal().Err(err).Msg("import")
	}

	fmt.Println()
	fmt.Println("=== Import Complete ===")
	fmt.Printf("Total entries: %d\n", stats.Total)
	fmt.Printf("New:           %d\n", stats.New)
	fmt.Printf("Updated:       %d\n", stats.Updated)
	fmt.Printf("Skipped:       %d\n", stats.Skipped)
	fmt.Printf("Errors:        %d\n", stats.Errors)
	fmt.Printf("Duration:      %v\n", stats.Duration)
}

func runServe(cfg config.Config, log zerolog.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	host := flags.String("host", cfg.Host, "host to bind to")
	port := flags.String("port", cfg.Port, "port to listen on")
	site := flags.String("site", cfg.SiteDir, "static site directory (optional)")
	flags.Parse(args)

	db, idx, err := openStoreAndIndex(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer db.Close()
	defer idx.Close()

	opts := []web.Option{web.WithIndex(idx, db)}
	if *site != "" {
		opts = append(opts, web.WithSiteDir(*site))
	}
	server := web.NewServer(db, log, opts...)

	addr := fmt.Sprintf("%s:%s", *host, *port)
	log.Info().Str("addr", addr).Msg("search server listening")
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

func runDocent(cfg config.Config, log zerolog.Logger, args []string) {
	flags := flag.NewFlagSet("docent", flag.ExitOnError)
	host := flags.String("host", cfg.Host, "host to bind to")
	port := flags.String("port", cfg.Port, "port to listen on")
	libraryURL := flags.String("library-url", cfg.LibraryURL, "published library.json URL")
	libraryPath := flags.String("library", cfg.LibraryPath, "local library.json fallback")
	ttl := flags.Duration("ttl", cfg.SnapshotTTL, "snapshot freshness window")
	flags.Parse(args)

	fetch := func(ctx context.Context) (*library.Library, error) {
		if *libraryURL != "" {
			return library.NewClient(*libraryURL).Fetch(ctx)
		}
		return library.Load(*libraryPath)
	}

	cache := snapshot.New(fetch, *ttl, snapshot.WithLogger(log))
	server := web.NewServer(cache, log)

	addr := fmt.Sprintf("%s:%s", *host, *port)
	log.Info().Str("addr", addr).Dur("ttl", *ttl).Msg("docent server listening")
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

func runSearch(cfg config.Config, args []string) {
	flags := flag.NewFlagSet("search", flag.ExitOnError)
	limit := flags.Int("limit", 10, "max results")
	topic := flags.String("topic", "", "filter by topic")
	difficulty := flags.String("difficulty", "", "filter by difficulty")
	contentType := flags.String("type", "", "filter by content type")
	flags.Parse(args)

	if flags.NArg() < 1 {
		fmt.Println("Error: search query required")
		fmt.Println("Usage: library-docent search [flags] <query>")
		os.Exit(1)
	}
	query := strings.Join(flags.Args(), " ")

	db, idx, err := openStoreAndIndex(cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	defer idx.Close()

	filters := docent.Filters{Type: *contentType, Topic: *topic, Difficulty: *difficulty}
	hits, err := idx.Search(query, filters, *limit)
	if err != nil {
		fmt.Printf("Error searching: %v\n", err)
		os.Exit(1)
	}

	if len(hits) == 0 {
		fmt.Println("No results found")
		return
	}

	fmt.Printf("Found %d results:\n\n", len(hits))
	for i, hit := range hits {
		rec, err := db.Get(hit.ID)
		if err != nil || rec == nil {
			continue
		}
		e := &rec.Entry
		fmt.Printf("%d. %s\n", i+1, e.Title)
		fmt.Printf("   Type: %s", e.ContentType)
		if e.Facets.Difficulty != "" {
			fmt.Printf(" | Difficulty: %s", e.Facets.Difficulty)
		}
		if len(e.Facets.Topics) > 0 {
			fmt.Printf(" | Topics: %s", strings.Join(e.Facets.Topics, ", "))
		}
		fmt.Println()
		if e.URL != "" {
			fmt.Printf("   URL: %s\n", e.URL)
		}
		fmt.Printf("   Score: %.3f\n\n", hit.Score)
	}
}

func runStats(cfg config.Config) {
	db, idx, err := openStoreAndIndex(cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	defer idx.Close()

	total, err := db.Count()
	if err != nil {
		fmt.Printf("Error counting entries: %v\n", err)
		os.Exit(1)
	}
	byType, err := db.CountByType()
	if err != nil {
		fmt.Printf("Error counting by type: %v\n", err)
		os.Exit(1)
	}
	indexCount, err := idx.Count()
	if err != nil {
		fmt.Printf("Error counting index: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Library Statistics ===")
	fmt.Printf("Entries in store: %d\n", total)
	for contentType, count := range byType {
		fmt.Printf("  %-10s %d\n", contentType+":", count)
	}
	fmt.Printf("Entries in index: %d\n", indexCount)
}

func runGet(cfg config.Config, id string) {
	db, idx, err := openStoreAndIndex(cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	defer idx.Close()

	entries, err := db.Entries(context.Background())
	if err != nil {
		fmt.Printf("Error listing entries: %v\n", err)
		os.Exit(1)
	}

	entry, err := docent.Lookup(entries, id)
	if err != nil {
		fmt.Printf("Entry not found: %s\n", id)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding entry: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
