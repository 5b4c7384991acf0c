// Package seo builds per-page metadata (title, Open Graph, Twitter card, JSON-LD) from the
// seo blocks in the content files, filling gaps with site-wide fallbacks.
package seo

import (
	"encoding/json"
	"strings"

	"github.com/insightexus/site/internal/models"
)

const (
	siteName       = "InsightExus"
	twitterHandle  = "@insightexus"
	largeImageCard = "summary_large_image"

	offeringOGImage      = "/og-images/services/services-og.png"
	offeringTwitterImage = "/twitter-images/services/services-twitter.png"
)

// Image is an Open Graph image reference.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// OpenGraph is the og:* block of a page.
type OpenGraph struct {
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Type          string   `json:"type,omitempty"`
	SiteName      string   `json:"siteName,omitempty"`
	Images        []Image  `json:"images,omitempty"`
	PublishedTime string   `json:"publishedTime,omitempty"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Twitter is the twitter:* card of a page.
type Twitter struct {
	Card        string   `json:"card,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Creator     string   `json:"creator,omitempty"`
}

// Metadata is everything a page head needs.
type Metadata struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Keywords    []string        `json:"keywords,omitempty"`
	Robots      json.RawMessage `json:"robots,omitempty"`
	Canonical   string          `json:"canonical,omitempty"`
	OpenGraph   *OpenGraph      `json:"openGraph,omitempty"`
	Twitter     *Twitter        `json:"twitter,omitempty"`
	// JSONLD is the application/ld+json payload.
	JSONLD json.RawMessage `json:"jsonLd,omitempty"`
}

// Home returns the landing page metadata straight from home.json.
func Home(home models.Home) *Metadata {
	seo := home.SEO
	if seo == nil {
		return &Metadata{Title: siteName}
	}
	og := ogOrEmpty(seo)
	tw := twitterOrEmpty(seo)
	return &Metadata{
		Title:       seo.Title,
		Description: seo.Description,
		Keywords:    seo.Keywords,
		Robots:      seo.Robots,
		Canonical:   seo.CanonicalURL,
		OpenGraph: &OpenGraph{
			Title:       og.Title,
			Description: og.Description,
			Type:        og.Type,
			SiteName:    og.SiteName,
			Images:      images(Image{URL: og.Image}),
		},
		Twitter: &Twitter{
			Card:        tw.Card,
			Title:       tw.Title,
			Description: tw.Description,
			Images:      nonEmpty(tw.Image),
			Creator:     tw.Creator,
		},
		JSONLD: seo.Schema,
	}
}

// ForCaseStudy returns project page metadata. A nil case study, or one without an seo
// block, yields the not-found metadata.
func ForCaseStudy(cs *models.CaseStudy, baseURL string) *Metadata {
	if cs == nil || cs.SEO == nil {
		return &Metadata{
			Title:       "Project Not Found | " + siteName,
			Description: "The requested project could not be found.",
		}
	}
	seo := cs.SEO
	base := strings.TrimRight(baseURL, "/")
	og := ogOrEmpty(seo)
	tw := twitterOrEmpty(seo)
	return &Metadata{
		Title:       seo.Title,
		Description: seo.Description,
		Keywords:    seo.Keywords,
		Robots:      seo.Robots,
		Canonical:   seo.CanonicalURL,
		OpenGraph: &OpenGraph{
			Title:       og.Title,
			Description: og.Description,
			Type:        og.Type,
			SiteName:    og.SiteName,
			Images:      []Image{{URL: base + og.Image, Alt: og.ImageAlt}},
		},
		Twitter: &Twitter{
			Card:        tw.Card,
			Title:       tw.Title,
			Description: tw.Description,
			Images:      []string{base + tw.Image},
			Creator:     tw.Creator,
		},
		JSONLD: seo.Schema,
	}
}

// serviceSchema is the JSON-LD generated for offerings without their own schema.
type serviceSchema struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Provider    organization `json:"provider"`
	URL         string       `json:"url"`
}

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ForOffering returns service page metadata. Every field falls back to a site default
// so a partial seo block still renders a complete head.
func ForOffering(o *models.Offering, baseURL string) *Metadata {
	if o == nil || o.SEO == nil {
		return &Metadata{
			Title:       "Service Not Found | " + siteName,
			Description: "The requested service could not be found.",
		}
	}
	seo := o.SEO
	base := strings.TrimRight(baseURL, "/")
	pageURL := base + "/services/" + o.Slug
	og := ogOrEmpty(seo)
	tw := twitterOrEmpty(seo)

	jsonLD := seo.Schema
	if len(jsonLD) == 0 {
		// Marshal of a struct of strings cannot fail.
		jsonLD, _ = json.Marshal(serviceSchema{
			Context:     "https://schema.org",
			Type:        "Service",
			Name:        o.Title,
			Description: o.Description,
			Provider:    organization{Type: "Organization", Name: siteName},
			URL:         pageURL,
		})
	}

	return &Metadata{
		Title:       seo.Title,
		Description: seo.Description,
		Keywords:    seo.Keywords,
		Robots:      seo.Robots,
		Canonical:   firstNonEmpty(seo.CanonicalURL, pageURL),
		OpenGraph: &OpenGraph{
			Title:       firstNonEmpty(og.Title, seo.Title),
			Description: firstNonEmpty(og.Description, seo.Description),
			Type:        firstNonEmpty(og.Type, "service"),
			SiteName:    firstNonEmpty(og.SiteName, siteName),
			Images: []Image{{
				URL: base + firstNonEmpty(og.Image, offeringOGImage),
				Alt: firstNonEmpty(og.ImageAlt, o.Title),
			}},
		},
		Twitter: &Twitter{
			Card:        firstNonEmpty(tw.Card, largeImageCard),
			Title:       firstNonEmpty(tw.Title, seo.Title),
			Description: firstNonEmpty(tw.Description, seo.Description),
			Images:      []string{base + firstNonEmpty(tw.Image, og.Image, offeringTwitterImage)},
			Creator:     firstNonEmpty(tw.Creator, twitterHandle),
		},
		JSONLD: jsonLD,
	}
}

// ForArticle returns blog post metadata, derived from the post when it has no seo block.
func ForArticle(a *models.Article) *Metadata {
	if a == nil {
		return &Metadata{Title: "Post Not Found"}
	}
	var seo models.SEO
	if a.SEO != nil {
		seo = *a.SEO
	}
	keywords := []string(seo.Keywords)
	if len(keywords) == 0 {
		keywords = a.Tags
	}
	description := firstNonEmpty(seo.Description, a.Excerpt)
	var authors []string
	if a.Author != "" {
		authors = []string{a.Author}
	}
	return &Metadata{
		Title:       firstNonEmpty(seo.Title, a.Title+" | "+siteName+" Blog"),
		Description: description,
		Keywords:    keywords,
		OpenGraph: &OpenGraph{
			Title:         firstNonEmpty(seo.Title, a.Title),
			Description:   description,
			Type:          "article",
			PublishedTime: a.PublishDate,
			ModifiedTime:  a.UpdatedDate,
			Authors:       authors,
			Tags:          a.Tags,
			Images:        images(Image{URL: a.Image}),
		},
		Twitter: &Twitter{
			Card:        largeImageCard,
			Title:       firstNonEmpty(seo.Title, a.Title),
			Description: description,
			Images:      nonEmpty(a.Image),
		},
	}
}

func ogOrEmpty(seo *models.SEO) models.OpenGraph {
	if seo.OpenGraph == nil {
		return models.OpenGraph{}
	}
	return *seo.OpenGraph
}

func twitterOrEmpty(seo *models.SEO) models.Twitter {
	if seo.Twitter == nil {
		return models.Twitter{}
	}
	return *seo.Twitter
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func images(img Image) []Image {
	if img.URL == "" {
		return nil
	}
	return []Image{img}
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
