// Package config loads the configured set of documentation libraries and
// the search/server tuning defaults, from a YAML file: defaults, then a
// file overlay, then validation.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/aman-cerp/docsearch-mcp/internal/reposvc"
)

// libraryIDRe requires a library id to match [a-z0-9-]+.
var libraryIDRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// Library is one configured documentation library.
type Library struct {
	ID       string `yaml:"id"`
	IndexURL string `yaml:"indexUrl"`
}

// ServerConfig holds the search-mode and token-budget defaults applied
// when a caller omits them, plus the fetch concurrency/timeout knobs for
// the HTTP client that loads documents.
type ServerConfig struct {
	DefaultSearchMode   string `yaml:"defaultSearchMode"`
	DefaultMaxTokens    int    `yaml:"defaultMaxTokens"`
	FetchTimeoutSeconds int    `yaml:"fetchTimeoutSeconds"`
	FetchConcurrency    int    `yaml:"fetchConcurrency"`
}

// LoggingConfig holds the rotating-file-logging knobs. FilePath empty
// means "use the default per-user log path" rather than disabling file
// logging; there is no core-level switch to turn file logging off, only
// to redirect or resize it. WriteToStderr is a pointer so a file that
// omits the key leaves the default (true) in place, distinguishing
// "not set" from an explicit "writeToStderr: false".
type LoggingConfig struct {
	Level         string `yaml:"level"`
	FilePath      string `yaml:"filePath"`
	MaxSizeMB     int    `yaml:"maxSizeMB"`
	MaxFiles      int    `yaml:"maxFiles"`
	WriteToStderr *bool  `yaml:"writeToStderr"`
}

// Config is the complete load-time configuration: the library list plus
// server tuning and log rotation settings.
type Config struct {
	Libraries []Library     `yaml:"libraries"`
	Server    ServerConfig  `yaml:"server"`
	Logging   LoggingConfig `yaml:"logging"`
}

// Default returns the hardcoded defaults applied before a config file is
// overlaid on top.
func Default() *Config {
	writeToStderr := true
	return &Config{
		Server: ServerConfig{
			DefaultSearchMode:   "balanced",
			DefaultMaxTokens:    25000,
			FetchTimeoutSeconds: 15,
			FetchConcurrency:    8,
		},
		Logging: LoggingConfig{
			Level:         "info",
			MaxSizeMB:     10,
			MaxFiles:      5,
			WriteToStderr: &writeToStderr,
		},
	}
}

// Load reads path as YAML, overlays it onto Default, and validates the
// result. A missing or empty Server section in the file leaves the
// defaults in place field-by-field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := Default()
	cfg.Libraries = file.Libraries
	cfg.mergeServer(file.Server)
	cfg.mergeLogging(file.Logging)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) mergeServer(s ServerConfig) {
	if s.DefaultSearchMode != "" {
		c.Server.DefaultSearchMode = s.DefaultSearchMode
	}
	if s.DefaultMaxTokens != 0 {
		c.Server.DefaultMaxTokens = s.DefaultMaxTokens
	}
	if s.FetchTimeoutSeconds != 0 {
		c.Server.FetchTimeoutSeconds = s.FetchTimeoutSeconds
	}
	if s.FetchConcurrency != 0 {
		c.Server.FetchConcurrency = s.FetchConcurrency
	}
}

func (c *Config) mergeLogging(l LoggingConfig) {
	if l.Level != "" {
		c.Logging.Level = l.Level
	}
	if l.FilePath != "" {
		c.Logging.FilePath = l.FilePath
	}
	if l.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = l.MaxSizeMB
	}
	if l.MaxFiles != 0 {
		c.Logging.MaxFiles = l.MaxFiles
	}
	if l.WriteToStderr != nil {
		c.Logging.WriteToStderr = l.WriteToStderr
	}
}

// Validate checks that every library id matches [a-z0-9-]+, is unique
// across the configured set, and carries a non-empty indexUrl.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Libraries))
	for _, lib := range c.Libraries {
		if !libraryIDRe.MatchString(lib.ID) {
			return fmt.Errorf("library id %q must match [a-z0-9-]+", lib.ID)
		}
		if _, dup := seen[lib.ID]; dup {
			return fmt.Errorf("duplicate library id %q", lib.ID)
		}
		seen[lib.ID] = struct{}{}
		if lib.IndexURL == "" {
			return fmt.Errorf("library %q: indexUrl is required", lib.ID)
		}
	}
	return nil
}

// ReposvcLibraries converts the configured libraries into the shape
// internal/reposvc.Manager expects.
func (c *Config) ReposvcLibraries() []reposvc.Library {
	out := make([]reposvc.Library, len(c.Libraries))
	for i, lib := range c.Libraries {
		out[i] = reposvc.Library{ID: lib.ID, IndexURL: lib.IndexURL}
	}
	return out
}
