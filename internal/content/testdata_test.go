package content

import (
	"os"
	"path/filepath"
	"testing"
)

const testBlog = `{"posts": [
  {"slug": "go-tips", "title": "Go Tips", "excerpt": "Practical Go", "category": "Engineering", "tags": ["go"], "visibility": true, "publishDate": "2024-01-02"},
  {"slug": "rust-notes", "title": "Rust Notes", "excerpt": "Ownership", "category": "Engineering", "visibility": true},
  {"slug": "hiring", "title": "Hiring", "excerpt": "We are hiring", "category": "Company", "visibility": true},
  {"slug": "draft", "title": "Draft", "excerpt": "WIP", "category": "Engineering", "visibility": false},
  {"slug": 42, "title": "Broken"}
]}`

const testProjects = `[
  {"slug": "retail-cloud", "title": "Retail Cloud", "description": "Cloud migration", "industry": "Retail", "stack": ["AWS"], "services": ["cloud"], "visibility": true,
   "metrics": [{"label": "Uptime", "value": "99.9"}, {"label": "Cost", "value": "-30", "unit": "%"}],
   "testimonial": {"visibility": true, "quote": "Great", "author": "A", "role": "CTO", "company": "Retail Co"}},
  {"slug": "bank-data", "title": "Bank Data", "description": "Data platform", "industry": "Finance", "services": ["cloud", "data"], "visibility": true,
   "metrics": [{"label": "uptime", "value": "99.99"}, {"label": "Latency", "value": "20", "unit": "ms"}],
   "testimonial": {"visibility": false, "quote": "Hidden", "author": "B"}},
  {"slug": "secret", "title": "Secret", "description": "Hidden", "services": ["cloud"], "visibility": false}
]`

const testServices = `{"services": [
  {"slug": "cloud", "title": "Cloud", "description": "Cloud services", "features": ["migration"], "visibility": true},
  {"slug": "data", "title": "Data", "description": "Data services", "visibility": false}
]}`

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func fullContent(t *testing.T) string {
	t.Helper()
	return writeContent(t, map[string]string{
		BlogFile:     testBlog,
		ProjectsFile: testProjects,
		ServicesFile: testServices,
		HomeFile:     `{"seo": {"title": "InsightExus", "description": "Home"}}`,
	})
}
