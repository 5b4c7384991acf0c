package seo

import (
	"strings"

	"github.com/insightexus/site/internal/models"
)

// Preview is the compact share-card summary served by the debug meta endpoints.
type Preview struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	OpenGraph   PreviewImages `json:"openGraph"`
}

// PreviewImages holds absolute image URLs.
type PreviewImages struct {
	Images []string `json:"images"`
}

// CaseStudyPreview resolves the share card for a project. The image comes from the
// seo Open Graph images, then the first screenshot, then the conventional og-images path.
func CaseStudyPreview(cs models.CaseStudy, siteURL string) Preview {
	var seo models.SEO
	if cs.SEO != nil {
		seo = *cs.SEO
	}
	img := ""
	if seo.OpenGraph != nil && len(seo.OpenGraph.Images) > 0 {
		img = seo.OpenGraph.Images[0]
	}
	if img == "" && len(cs.Screenshots) > 0 {
		img = cs.Screenshots[0].Src
	}
	if img == "" {
		img = "/og-images/projects/" + cs.Slug + ".png"
	}
	return Preview{
		Slug:        cs.Slug,
		Title:       firstNonEmpty(seo.Title, cs.Title),
		Description: firstNonEmpty(seo.Description, cs.Excerpt, cs.Description),
		OpenGraph:   PreviewImages{Images: []string{AbsoluteURL(siteURL, img)}},
	}
}

// OfferingPreview resolves the share card for a service. The image comes from the seo
// Open Graph image, then its images list, then the conventional og-images path.
func OfferingPreview(o models.Offering, siteURL string) Preview {
	var seo models.SEO
	if o.SEO != nil {
		seo = *o.SEO
	}
	img := ""
	if seo.OpenGraph != nil {
		img = seo.OpenGraph.Image
		if img == "" && len(seo.OpenGraph.Images) > 0 {
			img = seo.OpenGraph.Images[0]
		}
	}
	if img == "" {
		img = "/og-images/services/" + o.Slug + ".png"
	}
	return Preview{
		Slug:        o.Slug,
		Title:       firstNonEmpty(seo.Title, o.Title),
		Description: firstNonEmpty(seo.Description, o.ShortDescription, o.Description),
		OpenGraph:   PreviewImages{Images: []string{AbsoluteURL(siteURL, img)}},
	}
}

// AbsoluteURL keeps http(s) URLs as they are and joins anything else onto siteURL.
func AbsoluteURL(siteURL, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return siteURL + path
	}
	return siteURL + "/" + path
}
