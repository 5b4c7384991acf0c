// Package sitemap renders the sitemaps.org urlset for the static pages and every content entry.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/insightexus/site/internal/content"
	"github.com/insightexus/site/internal/models"
	"go.uber.org/zap"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is a sitemaps.org changefreq value.
type ChangeFreq string

const (
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
)

// StaticRoutes are the fixed site pages, home first.
var StaticRoutes = []string{
	"",
	"/about",
	"/services",
	"/projects",
	"/architecture",
	"/solutions",
	"/portfolio-gallery",
	"/recruiters",
	"/testimonials",
	"/case-studies",
	"/portfolio",
	"/blog",
	"/contact",
	"/faq",
	"/privacy-policy",
	"/terms",
	"/cookie-policy",
}

// URL is one <url> entry.
type URL struct {
	Loc          string
	LastModified time.Time
	ChangeFreq   ChangeFreq
	Priority     float64
}

// URLSet is the sitemap document.
type URLSet struct {
	URLs []URL
}

// Source supplies content collections. content.Loader satisfies it; each collection
// is read on its own so one broken file does not empty the whole sitemap.
type Source interface {
	LoadArticles() (content.Decoded[models.Article], error)
	LoadCaseStudies() (content.Decoded[models.CaseStudy], error)
	LoadOfferings() (content.Decoded[models.Offering], error)
}

// Generator builds sitemaps for one site.
type Generator struct {
	baseURL string
	source  Source
	logger  *zap.Logger
	now     func() time.Time
}

// NewGenerator returns a generator producing absolute URLs under baseURL.
func NewGenerator(baseURL string, source Source, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		source:  source,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate lists static routes, then blog posts, projects, and services.
// A collection that fails to load is logged and contributes no entries.
func (g *Generator) Generate() *URLSet {
	now := g.now()
	set := &URLSet{}
	for _, route := range StaticRoutes {
		priority := 0.8
		if route == "" {
			priority = 1.0
		}
		set.URLs = append(set.URLs, URL{Loc: g.baseURL + route, LastModified: now, ChangeFreq: Monthly, Priority: priority})
	}

	if posts, err := g.source.LoadArticles(); err != nil {
		g.logger.Error("error generating blog sitemap", zap.Error(err))
	} else {
		for _, p := range posts.Items {
			set.URLs = append(set.URLs, URL{
				Loc:          g.baseURL + "/blog/" + p.Slug,
				LastModified: postModified(p, now),
				ChangeFreq:   Weekly,
				Priority:     0.7,
			})
		}
	}

	if projects, err := g.source.LoadCaseStudies(); err != nil {
		g.logger.Error("error generating project sitemap", zap.Error(err))
	} else {
		for _, p := range projects.Items {
			set.URLs = append(set.URLs, URL{Loc: g.baseURL + "/projects/" + p.Slug, LastModified: now, ChangeFreq: Monthly, Priority: 0.6})
		}
	}

	if services, err := g.source.LoadOfferings(); err != nil {
		g.logger.Error("error generating service sitemap", zap.Error(err))
	} else {
		for _, s := range services.Items {
			set.URLs = append(set.URLs, URL{Loc: g.baseURL + "/services/" + s.Slug, LastModified: now, ChangeFreq: Monthly, Priority: 0.8})
		}
	}
	return set
}

// postModified prefers updatedDate over publishDate and falls back to now when neither parses.
func postModified(a models.Article, now time.Time) time.Time {
	raw := a.UpdatedDate
	if raw == "" {
		raw = a.PublishDate
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}

type xmlURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod"`
	ChangeFreq ChangeFreq `xml:"changefreq"`
	Priority   string     `xml:"priority"`
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// WriteTo encodes the set as sitemap XML.
func (s *URLSet) WriteTo(w io.Writer) (int64, error) {
	doc := xmlURLSet{Xmlns: xmlns, URLs: make([]xmlURL, len(s.URLs))}
	for i, u := range s.URLs {
		doc.URLs[i] = xmlURL{
			Loc:        u.Loc,
			LastMod:    u.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: u.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", u.Priority),
		}
	}
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return cw.n, fmt.Errorf("encode sitemap: %w", err)
	}
	if _, err := io.WriteString(cw, "\n"); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
