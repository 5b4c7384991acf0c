// Package models defines core data structures for site content, search records, and inquiries.
package models

import (
	"encoding/json"
)

// StringList decodes a JSON array of strings leniently: a single string becomes a
// one-element list, null becomes empty, and non-string array elements are skipped.
// Content files are hand-edited, so a stray number in a tag list should not fail the load.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case string:
		*l = StringList{v}
	case []interface{}:
		out := make(StringList, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		*l = out
	default:
		*l = nil
	}
	return nil
}

// Article is a blog post from blog.json.
type Article struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        StringList `json:"tags,omitempty"`
	Visibility  bool       `json:"visibility"`
	Author      string     `json:"author,omitempty"`
	Image       string     `json:"image,omitempty"`
	PublishDate string     `json:"publishDate,omitempty"`
	UpdatedDate string     `json:"updatedDate,omitempty"`
	SEO         *SEO       `json:"seo,omitempty"`
}

// CaseStudy is a completed project writeup from projects.json.
type CaseStudy struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Excerpt     string       `json:"excerpt,omitempty"`
	Industry    string       `json:"industry,omitempty"`
	Stack       StringList   `json:"stack,omitempty"`
	Services    StringList   `json:"services,omitempty"` // offering slugs
	Visibility  bool         `json:"visibility"`
	Metrics     []Metric     `json:"metrics,omitempty"`
	Testimonial *Testimonial `json:"testimonial,omitempty"`
	Screenshots []Screenshot `json:"screenshots,omitempty"`
	SEO         *SEO         `json:"seo,omitempty"`
}

// Metric is a headline result figure attached to a case study.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Testimonial is a client quote attached to a case study.
type Testimonial struct {
	Visibility bool   `json:"visibility"`
	Quote      string `json:"quote"`
	Author     string `json:"author"`
	Role       string `json:"role"`
	Company    string `json:"company"`
}

// Screenshot is an image reference attached to a case study.
type Screenshot struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Offering is a service entry from services.json.
type Offering struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	Features         StringList `json:"features,omitempty"`
	Visibility       bool       `json:"visibility"`
	SEO              *SEO       `json:"seo,omitempty"`
}

// Home is the site-level content from home.json. Only the SEO block is consumed here.
type Home struct {
	SEO *SEO `json:"seo,omitempty"`
}

// SEO is the per-page metadata block shared by all content files.
type SEO struct {
	Title        string          `json:"title,omitempty"`
	Description  string          `json:"description,omitempty"`
	Keywords     StringList      `json:"keywords,omitempty"`
	CanonicalURL string          `json:"canonicalUrl,omitempty"`
	Robots       json.RawMessage `json:"robots,omitempty"`
	OpenGraph    *OpenGraph      `json:"openGraph,omitempty"`
	Twitter      *Twitter        `json:"twitter,omitempty"`
	Schema       json.RawMessage `json:"schema,omitempty"`
}

// OpenGraph holds og:* values.
type OpenGraph struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Images      StringList `json:"images,omitempty"`
	ImageAlt    string     `json:"imageAlt,omitempty"`
	SiteName    string     `json:"siteName,omitempty"`
	Type        string     `json:"type,omitempty"`
}

// Twitter holds twitter:* card values.
type Twitter struct {
	Card        string `json:"card,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Creator     string `json:"creator,omitempty"`
}

// Collections groups the three searchable content collections in their source order.
type Collections struct {
	Articles    []Article
	CaseStudies []CaseStudy
	Offerings   []Offering
}
