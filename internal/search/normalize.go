package search

import (
	"github.com/insightexus/site/internal/models"
)

// SkipFunc is told about source records left out of the normalized set because
// a required field (title or summary) was empty.
type SkipFunc func(kind models.Kind, identifier string)

// Normalize converts the three content collections into one ordered ContentRecord slice:
// articles first, then case studies, then offerings, each in source order.
//
// Only visible articles are included. Case studies and offerings carry no visibility gate
// here; the asymmetry is deliberate and matches how the site has always indexed them.
// Records without a title or summary are skipped, never reported as errors.
func Normalize(c models.Collections) []models.ContentRecord {
	return normalize(c, nil)
}

func normalize(c models.Collections, onSkip SkipFunc) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, len(c.Articles)+len(c.CaseStudies)+len(c.Offerings))
	add := func(kind models.Kind, title, summary, id string, tags []string, category string) {
		if title == "" || summary == "" {
			if onSkip != nil {
				onSkip(kind, id)
			}
			return
		}
		out = append(out, models.NewContentRecord(kind, title, summary, id, copyTags(tags), category))
	}

	for _, a := range c.Articles {
		if !a.Visibility {
			continue
		}
		summary := a.Excerpt
		if summary == "" {
			summary = a.Description
		}
		add(models.KindArticle, a.Title, summary, a.Slug, a.Tags, a.Category)
	}
	for _, cs := range c.CaseStudies {
		add(models.KindCaseStudy, cs.Title, cs.Description, cs.Slug, cs.Stack, cs.Industry)
	}
	for _, o := range c.Offerings {
		add(models.KindOffering, o.Title, o.Description, o.Slug, o.Features, "")
	}
	return out
}

// copyTags detaches record tags from the source slice so later edits to either side
// cannot leak into the other.
func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return append([]string(nil), tags...)
}
