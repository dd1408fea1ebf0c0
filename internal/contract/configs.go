package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teamlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit   = 25
	MaxResultLimit       = 1000
	DefaultPrecision     = 1
	DefaultModel         = "gpt-4o-mini"
	DefaultEndpoint      = "https://models.github.ai/inference/chat/completions"
	DefaultTemperature   = 0.3
	DefaultMaxTokens     = 4000
	DefaultCommitDepth   = 2000 // Raw commits read before sampling
	DefaultCallTimeout   = 60 * time.Second
	RecentActivityWindow = 30 * 24 * time.Hour
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath    string
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Model       string
	Endpoint    string
	Temperature float64
	MaxTokens   int
	NoAI        bool // Force the local fallback path, never call the network

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	Model            string  `mapstructure:"model"`
	Endpoint         string  `mapstructure:"endpoint"`
	Temperature      float64 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max-tokens"`
	NoAI             bool    `mapstructure:"no-ai"`
	CacheBackend     string  `mapstructure:"cache-backend"`
	CacheDBConnect   string  `mapstructure:"cache-db-connect"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate converts the raw input into the validated Config,
// resolving the repository root through the git client.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// 1. Repository path must point inside a git work tree.
	repoPath := input.RepoPathStr
	if repoPath == "" {
		repoPath = "."
	}
	if !client.IsRepository(ctx, repoPath) {
		return NewRepositoryNotFound(repoPath)
	}
	root, err := client.GetRepoRoot(ctx, repoPath)
	if err != nil {
		return NewResourceError("could not resolve repository root", err)
	}
	cfg.RepoPath = root

	// 2. Result limit.
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxResultLimit))
	}
	cfg.ResultLimit = input.Limit

	// 3. Output mode.
	switch schema.OutputMode(input.Output) {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.HTMLOut, schema.ParquetOut:
		cfg.Output = schema.OutputMode(input.Output)
	default:
		return NewValidationError(fmt.Sprintf("unsupported output format: %s. Must be text, csv, json, html, or parquet", input.Output))
	}
	cfg.OutputFile = input.OutputFile

	// 4. Numeric display settings.
	if input.Precision < 0 || input.Precision > 6 {
		return NewValidationError("precision must be between 0 and 6")
	}
	cfg.Precision = input.Precision
	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)

	// 5. Model call settings.
	cfg.Model = orDefault(input.Model, DefaultModel)
	cfg.Endpoint = orDefault(input.Endpoint, DefaultEndpoint)
	cfg.Temperature = input.Temperature
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return NewValidationError("temperature must be between 0 and 2")
	}
	cfg.MaxTokens = input.MaxTokens
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	cfg.NoAI = input.NoAI

	// 6. Persistence backends.
	cfg.CacheBackend = schema.DatabaseBackend(orDefault(input.CacheBackend, string(schema.SQLiteBackend)))
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = schema.DatabaseBackend(input.HistoryBackend)
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if cfg.HistoryBackend != "" {
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}
	}

	return nil
}

// ValidateDatabaseConnectionString checks that networked backends carry a
// connection string and that the backend name is known.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, "":
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return NewValidationError("mysql backend requires a connection string (user:pass@tcp(host:port)/dbname)")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return NewValidationError("postgresql backend requires a connection string (host=... port=... user=... dbname=...)")
		}
		return nil
	default:
		return NewValidationError(fmt.Sprintf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend))
	}
}

// parseBoolish interprets yes/no/true/false/1/0 strings with a default.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}

// orDefault returns s unless it is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
