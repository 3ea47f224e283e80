// Package config loads server settings from files and the environment.
package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dandi/dandi-mcp/internal/dandi"
)

// Defaults applied when neither a settings file nor the environment says
// otherwise.
const (
	DefaultModel          = "claude-sonnet-4-5"
	DefaultLogLevel       = "info"
	DefaultTimeoutSeconds = 30
)

// Settings holds the merged server configuration. It is built once at
// startup and handed to the components that need it.
type Settings struct {
	APIURL          string  `json:"apiUrl,omitempty"`
	APIKey          string  `json:"apiKey,omitempty"`
	AnthropicAPIKey string  `json:"anthropicApiKey,omitempty"`
	Model           string  `json:"model,omitempty"`
	SchemaDir       string  `json:"schemaDir,omitempty"`
	LogLevel        string  `json:"logLevel,omitempty"`
	TimeoutSeconds  int     `json:"timeoutSeconds,omitempty"`
	RateLimit       float64 `json:"rateLimit,omitempty"`
}

// Load merges settings from the given JSON file paths, then environment
// variables, then defaults. Later paths override earlier ones; missing or
// unreadable files are silently skipped; the environment overrides files.
func Load(paths ...string) (*Settings, error) {
	merged := &Settings{}

	for _, path := range paths {
		if path == "" {
			continue
		}
		s, err := loadFile(path)
		if err != nil {
			continue
		}
		merge(merged, s)
	}

	merged.applyEnv()
	merged.applyDefaults()
	return merged, nil
}

// DefaultPaths returns the standard settings file search paths. The
// DANDI_MCP_SETTINGS path, when set, is read last and wins.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "dandi-mcp", "settings.json"))
	}
	if p := os.Getenv("DANDI_MCP_SETTINGS"); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// Timeout returns the archive call timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SlogLevel maps the configured log level onto slog.
func (s *Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func merge(dst, src *Settings) {
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.AnthropicAPIKey != "" {
		dst.AnthropicAPIKey = src.AnthropicAPIKey
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.SchemaDir != "" {
		dst.SchemaDir = src.SchemaDir
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.RateLimit > 0 {
		dst.RateLimit = src.RateLimit
	}
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("DANDI_API_URL"); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv("DANDI_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		s.AnthropicAPIKey = v
	}
	if v := os.Getenv("DANDI_SCHEMA_DIR"); v != "" {
		s.SchemaDir = v
	}
	if v := os.Getenv("DANDI_MCP_MODEL"); v != "" {
		s.Model = v
	}
	if v := os.Getenv("DANDI_MCP_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("DANDI_MCP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.TimeoutSeconds = n
		}
	}
}

func (s *Settings) applyDefaults() {
	if s.APIURL == "" {
		s.APIURL = dandi.BaseURL
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if s.RateLimit <= 0 {
		s.RateLimit = dandi.RateLimit
	}
}
