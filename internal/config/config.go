// Package config loads service configuration from the environment. A .env
// file in the working directory is honored when present; command-line flags
// override individual values per command.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the commands share.
type Config struct {
	DataDir        string        // directory for database and index files
	LibraryPath    string        // local library.json path
	LibraryURL     string        // published library.json URL (docent host)
	TranscriptsDir string        // markdown transcript bodies
	PapersDir      string        // markdown paper bodies
	SiteDir        string        // static site to serve at /
	Host           string
	Port           string
	SnapshotTTL    time.Duration // docent host snapshot freshness window
	LogLevel       string
	LogFormat      string // json or console
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	return Config{
		DataDir:        getenv("LIBRARY_DATA_DIR", "./data"),
		LibraryPath:    getenv("LIBRARY_JSON", "./library.json"),
		LibraryURL:     os.Getenv("LIBRARY_URL"),
		TranscriptsDir: os.Getenv("LIBRARY_TRANSCRIPTS_DIR"),
		PapersDir:      os.Getenv("LIBRARY_PAPERS_DIR"),
		SiteDir:        os.Getenv("LIBRARY_SITE_DIR"),
		Host:           getenv("LIBRARY_HOST", "127.0.0.1"),
		Port:           getenv("LIBRARY_PORT", "5000"),
		SnapshotTTL:    getenvDuration("LIBRARY_SNAPSHOT_TTL", 5*time.Minute),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
	}
}

// DBPath is the sqlite database location under the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "library.db")
}

// IndexPath is the Bleve index location under the data directory.
func (c Config) IndexPath() string {
	return filepath.Join(c.DataDir, "bleve")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
