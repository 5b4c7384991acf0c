package content

import (
	"strings"
	"time"

	"github.com/insightexus/site/internal/models"
)

// maxRelatedArticles and maxClientMetrics cap the lists the detail pages show.
const (
	maxRelatedArticles = 3
	maxClientMetrics   = 8
)

// Snapshot is one immutable load of every content collection.
type Snapshot struct {
	Articles    []models.Article
	CaseStudies []models.CaseStudy
	Offerings   []models.Offering
	Home        models.Home
	// Skipped counts array elements that could not be decoded into a record.
	Skipped  int
	LoadedAt time.Time
}

// Collections returns the three searchable collections.
func (s *Snapshot) Collections() models.Collections {
	return models.Collections{
		Articles:    s.Articles,
		CaseStudies: s.CaseStudies,
		Offerings:   s.Offerings,
	}
}

// ArticleBySlug returns the article with slug, visible or not.
func (s *Snapshot) ArticleBySlug(slug string) (models.Article, error) {
	for _, a := range s.Articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return models.Article{}, ErrNotFound
}

// CaseStudyBySlug returns the case study with slug.
func (s *Snapshot) CaseStudyBySlug(slug string) (models.CaseStudy, error) {
	for _, cs := range s.CaseStudies {
		if cs.Slug == slug {
			return cs, nil
		}
	}
	return models.CaseStudy{}, ErrNotFound
}

// OfferingBySlug returns the offering with slug.
func (s *Snapshot) OfferingBySlug(slug string) (models.Offering, error) {
	for _, o := range s.Offerings {
		if o.Slug == slug {
			return o, nil
		}
	}
	return models.Offering{}, ErrNotFound
}

// VisibleArticles returns the articles shown on the blog index.
func (s *Snapshot) VisibleArticles() []models.Article {
	out := make([]models.Article, 0, len(s.Articles))
	for _, a := range s.Articles {
		if a.Visibility {
			out = append(out, a)
		}
	}
	return out
}

// VisibleOfferings returns the offerings shown on the services index.
func (s *Snapshot) VisibleOfferings() []models.Offering {
	out := make([]models.Offering, 0, len(s.Offerings))
	for _, o := range s.Offerings {
		if o.Visibility {
			out = append(out, o)
		}
	}
	return out
}

// RelatedArticles returns up to three other articles sharing the category of the article
// with slug, in source order. Visibility is not checked, matching the article page.
func (s *Snapshot) RelatedArticles(slug string) ([]models.Article, error) {
	post, err := s.ArticleBySlug(slug)
	if err != nil {
		return nil, err
	}
	out := make([]models.Article, 0, maxRelatedArticles)
	for _, a := range s.Articles {
		if a.Category != post.Category || a.Slug == post.Slug {
			continue
		}
		out = append(out, a)
		if len(out) == maxRelatedArticles {
			break
		}
	}
	return out, nil
}

// CaseStudiesByOffering returns visible case studies that list the offering slug among their services.
func (s *Snapshot) CaseStudiesByOffering(offeringSlug string) []models.CaseStudy {
	var out []models.CaseStudy
	for _, cs := range s.CaseStudies {
		if !cs.Visibility {
			continue
		}
		for _, svc := range cs.Services {
			if svc == offeringSlug {
				out = append(out, cs)
				break
			}
		}
	}
	return out
}

// OfferingClientMetrics collects the metrics of the offering's case studies, keeping the first
// metric per label (case-insensitive) and at most eight overall.
func (s *Snapshot) OfferingClientMetrics(offeringSlug string) []models.Metric {
	var out []models.Metric
	seen := make(map[string]struct{})
	for _, cs := range s.CaseStudiesByOffering(offeringSlug) {
		for _, m := range cs.Metrics {
			key := strings.ToLower(m.Label)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, m)
			if len(out) == maxClientMetrics {
				return out
			}
		}
	}
	return out
}

// OfferingTestimonials returns the visible testimonials of the offering's case studies.
func (s *Snapshot) OfferingTestimonials(offeringSlug string) []models.Testimonial {
	var out []models.Testimonial
	for _, cs := range s.CaseStudiesByOffering(offeringSlug) {
		if cs.Testimonial != nil && cs.Testimonial.Visibility {
			out = append(out, *cs.Testimonial)
		}
	}
	return out
}
