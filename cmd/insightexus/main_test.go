package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/insightexus/site/internal/models"
)

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"cloud migration", "-output", "json"},
			expected: []string{"-output", "json", "cloud migration"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-fulltext", "cloud migration"},
			expected: []string{"-fulltext", "cloud migration"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"cloud migration"},
			expected: []string{"cloud migration"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"data", "platform", "-limit", "5"},
			expected: []string{"-limit", "5", "data", "platform"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("searchArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"cloud"}, "cloud"},
		{"multiple words", []string{"cloud", "migration"}, "cloud migration"},
		{"single quoted phrase", []string{"cloud migration"}, "cloud migration"},
		{"whitespace kept", []string{" cloud"}, " cloud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSearchQuery(tt.args); got != tt.expected {
				t.Errorf("buildSearchQuery(%q) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
content:
  directory: "./content"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_defaultsWhenNoFile(t *testing.T) {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		t.Skip("system config present")
	}
	chdir(t, t.TempDir())

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty", resolved)
	}
	if cfg.Server.Port != 8080 || cfg.Search.DefaultLimit == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}

func TestInitializeComponents(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"blog.json":     `{"posts": [{"slug": "a", "title": "Cloud Costs", "excerpt": "Savings", "visibility": true}]}`,
		"projects.json": `[]`,
		"services.json": `{"services": [{"slug": "cloud", "title": "Cloud", "description": "Migration"}]}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("content:\n  directory: \""+dir+"\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	status, err := statusDirect(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if status.Records != 2 || status.RecordsByKind["blog"] != 1 {
		t.Errorf("status: got %+v", status)
	}

	var buf bytes.Buffer
	writeStatusText(&buf, status)
	if !strings.Contains(buf.String(), "records:            2") {
		t.Errorf("text status:\n%s", buf.String())
	}

	resp, err := searchDirect(configPath, &models.SearchQuery{Query: "cloud"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || resp.Results[0].Path != "/blog/a" {
		t.Errorf("quick search: got %+v", resp)
	}
}
