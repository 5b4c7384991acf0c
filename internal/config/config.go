// Package config provides configuration loading and structs for the site server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Mail    MailConfig    `yaml:"mail"`
	Contact ContactConfig `yaml:"contact"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// AdminToken guards the inquiry endpoints. Empty disables them.
	AdminToken string `yaml:"admin_token"`
}

// SiteConfig holds public site identity used for absolute URLs.
type SiteConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// ContentConfig holds the location of the JSON content files.
type ContentConfig struct {
	Directory string `yaml:"directory"`
	// Watch reloads content when files in Directory change; defaults to true when unset.
	Watch *bool `yaml:"watch"`
}

// WatchOrDefault returns whether to watch the content directory; defaults to true when unset.
func (c *ContentConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// StorageConfig holds the inquiry database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds full-text search settings. Quick search has no knobs.
type SearchConfig struct {
	DefaultLimit int     `yaml:"default_limit"`
	MaxLimit     int     `yaml:"max_limit"`
	TitleBoost   float64 `yaml:"title_boost"`
	// AutoFuzzy retries a full-text search with typo tolerance when the exact search finds nothing.
	AutoFuzzy      *bool `yaml:"auto_fuzzy"`
	MaxSuggestions int   `yaml:"max_suggestions"`
}

// AutoFuzzyOrDefault returns whether to retry with fuzzy matching; defaults to true when unset.
func (s *SearchConfig) AutoFuzzyOrDefault() bool {
	if s.AutoFuzzy != nil {
		return *s.AutoFuzzy
	}
	return true
}

// MailConfig holds SMTP settings for contact form dispatch.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Secure   bool   `yaml:"secure"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	Admin    string `yaml:"admin"`
}

// ContactConfig holds contact endpoint limits.
type ContactConfig struct {
	RatePerMinute          int   `yaml:"rate_per_minute"`
	Burst                  int   `yaml:"burst"`
	MaxAttachmentBytes     int64 `yaml:"max_attachment_bytes"`
	AttachmentPreviewChars int   `yaml:"attachment_preview_chars"`
}

// Load reads and parses the config file at path, applies environment overrides,
// expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyEnv(&cfg)
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Content.Directory = expandPath(cfg.Content.Directory, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides mail and site settings from the environment variables the site
// has always been deployed with. Empty variables leave the file value in place.
func ApplyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.Site.URL, "NEXT_PUBLIC_SITE_URL")
	setString(&cfg.Server.AdminToken, "INSIGHTEXUS_ADMIN_TOKEN")
	setString(&cfg.Mail.Host, "SMTP_HOST")
	setString(&cfg.Mail.Username, "SMTP_USER")
	setString(&cfg.Mail.Password, "SMTP_PASS")
	setString(&cfg.Mail.From, "SMTP_FROM_EMAIL")
	setString(&cfg.Mail.Admin, "ADMIN_EMAIL")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = port
		}
	}
	if v := os.Getenv("SMTP_SECURE"); v != "" {
		cfg.Mail.Secure = v == "true"
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
