// Package config loads the run configuration from the environment, with
// optional .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by Load.
const (
	EnvClientSecretPath  = "CLIENT_SECRET_PATH"
	EnvTokenCachePath    = "GMAIL_CREDENTIALS_PATH"
	EnvSearchQuery       = "GMAIL_SEARCH_QUERY"
	EnvAllowedExtensions = "ALLOWED_EXTENSIONS"
	EnvDriveFolderID     = "DRIVE_FOLDER_ID"
	EnvMetricsEnabled    = "METRICS_ENABLED"
)

// MissingVarError indicates that a required environment variable is absent
// or empty.
type MissingVarError struct {
	Var string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Var)
}

// Config holds the settings for a single run. It is populated once at
// startup and passed explicitly to all components; no business logic reads
// the process environment directly.
type Config struct {
	// ClientSecretPath is the path to the OAuth2 client descriptor JSON.
	ClientSecretPath string

	// TokenCachePath is where the refreshable token pair is cached.
	// The file is created on first consent.
	TokenCachePath string

	// SearchQuery is a Gmail-native search filter string.
	SearchQuery string

	// AllowedExtensions is the normalized extension allow-list: each entry
	// lower-case with a leading dot.
	AllowedExtensions []string

	// DriveFolderID is the destination folder. When empty, a folder named
	// after the current month is found or created at run time.
	DriveFolderID string

	// MetricsEnabled controls whether run metrics are emitted on exit.
	MetricsEnabled bool
}

// Load reads a .env file if one exists in the working directory, then
// populates a Config from the environment. It fails on the first missing
// required value.
func Load() (Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	var cfg Config
	var err error

	if cfg.ClientSecretPath, err = requireEnv(EnvClientSecretPath); err != nil {
		return Config{}, err
	}
	if cfg.TokenCachePath, err = requireEnv(EnvTokenCachePath); err != nil {
		return Config{}, err
	}
	if cfg.SearchQuery, err = requireEnv(EnvSearchQuery); err != nil {
		return Config{}, err
	}

	raw, err := requireEnv(EnvAllowedExtensions)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowedExtensions = NormalizeExtensions(raw)
	if len(cfg.AllowedExtensions) == 0 {
		return Config{}, fmt.Errorf("%s contains no usable extensions: %q", EnvAllowedExtensions, raw)
	}

	cfg.DriveFolderID = strings.TrimSpace(os.Getenv(EnvDriveFolderID))
	cfg.MetricsEnabled = envBool(EnvMetricsEnabled, false)

	return cfg, nil
}

// NormalizeExtensions splits a comma-separated extension list and normalizes
// each entry to lower-case with a leading dot. Empty entries are dropped.
func NormalizeExtensions(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

func requireEnv(key string) (string, error) {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed, nil
		}
	}
	return "", &MissingVarError{Var: key}
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}
