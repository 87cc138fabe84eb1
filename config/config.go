/*
Package config resolves server settings and the catalog seed.

PRECEDENCE (later wins):
  1. Built-in defaults
  2. .env file in the working directory (optional)
  3. Process environment
  4. Command-line flags

ENVIRONMENT:
  RENTAL_PORT           HTTP server port
  RENTAL_DB             SQLite database path (":memory:" for in-memory)
  RENTAL_CATALOG        YAML catalog seed path ("" disables seeding)
  RENTAL_CORS_ORIGINS   Comma-separated allowed origins

SEE ALSO:
  - cmd/server/main.go: Uses Load and LoadCatalog
  - catalog.yaml: Default seed
*/
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/warp/rental-engine/rental"
)

const (
	DefaultPort    = 8080
	DefaultDBPath  = "rentals.db"
	DefaultCatalog = "catalog.yaml"
	DefaultEnvFile = ".env"
)

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// Config holds the server settings.
type Config struct {
	Port        int
	DBPath      string
	CatalogPath string
	CORSOrigins []string
}

// Load resolves the configuration from .env, the environment and args
// (typically os.Args[1:]).
func Load(args []string) (Config, error) {
	return load(args, DefaultEnvFile, os.LookupEnv)
}

func load(args []string, envFile string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		DBPath:      DefaultDBPath,
		CatalogPath: DefaultCatalog,
		CORSOrigins: DefaultCORSOrigins,
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := get("RENTAL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RENTAL_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v, ok := get("RENTAL_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := get("RENTAL_CATALOG"); ok {
		cfg.CatalogPath = v
	}
	if v, ok := get("RENTAL_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(v)
	}

	flags := flag.NewFlagSet("rental-engine", flag.ContinueOnError)
	flags.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML catalog seed (empty to skip)")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("database path is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// =============================================================================
// CATALOG SEED
// =============================================================================

// LoadCatalog reads a YAML catalog seed. Unknown keys are rejected.
func LoadCatalog(path string) (rental.CatalogSeed, error) {
	var seed rental.CatalogSeed

	f, err := os.Open(path)
	if err != nil {
		return seed, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return seed, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return seed, nil
}
