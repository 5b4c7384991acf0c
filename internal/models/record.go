package models

import "fmt"

// Kind identifies which content collection a record came from.
// The string values match the badge labels the site renders for each result.
type Kind string

const (
	KindArticle   Kind = "blog"
	KindCaseStudy Kind = "project"
	KindOffering  Kind = "service"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindArticle, KindCaseStudy, KindOffering:
		return true
	}
	return false
}

// PathPrefix returns the site section a kind links into.
func (k Kind) PathPrefix() string {
	switch k {
	case KindArticle:
		return "/blog"
	case KindCaseStudy:
		return "/projects"
	case KindOffering:
		return "/services"
	}
	return ""
}

// ParseKind maps a kind name to a Kind. Both the wire values ("blog", "project", "service")
// and the collection names ("article", "case-study", "offering") are accepted.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "blog", "article", "articles", "post", "posts":
		return KindArticle, nil
	case "project", "projects", "case-study", "case-studies":
		return KindCaseStudy, nil
	case "service", "services", "offering", "offerings":
		return KindOffering, nil
	}
	return "", fmt.Errorf("unknown content kind: %q", s)
}

// ContentRecord is the uniform searchable unit built from any content collection.
// Kind is fixed at construction; Identifier is unique within its Kind only.
type ContentRecord struct {
	kind       Kind
	Title      string
	Summary    string
	Identifier string
	Tags       []string
	Category   string
}

// NewContentRecord returns a record of the given kind.
func NewContentRecord(kind Kind, title, summary, identifier string, tags []string, category string) ContentRecord {
	return ContentRecord{
		kind:       kind,
		Title:      title,
		Summary:    summary,
		Identifier: identifier,
		Tags:       tags,
		Category:   category,
	}
}

// Kind returns the record's collection kind.
func (r ContentRecord) Kind() Kind { return r.kind }

// Path returns the navigable site path for the record, e.g. /blog/cloud-migration-guide.
func (r ContentRecord) Path() string {
	return r.kind.PathPrefix() + "/" + r.Identifier
}

// Hit is the exported form of a ContentRecord handed to result presenters.
type Hit struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Identifier string   `json:"identifier"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category,omitempty"`
	Path       string   `json:"path"`
	Score      float64  `json:"score,omitempty"`
}

// ToHit converts the record to its presenter form.
func (r ContentRecord) ToHit() Hit {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return Hit{
		Kind:       r.kind,
		Title:      r.Title,
		Summary:    r.Summary,
		Identifier: r.Identifier,
		Tags:       tags,
		Category:   r.Category,
		Path:       r.Path(),
	}
}
