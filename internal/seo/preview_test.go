package seo

import (
	"testing"

	"github.com/insightexus/site/internal/models"
)

func TestAbsoluteURL(t *testing.T) {
	tests := []struct{ path, want string }{
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"/og/a.png", "http://localhost:3001/og/a.png"},
		{"og/a.png", "http://localhost:3001/og/a.png"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL("http://localhost:3001", tt.path); got != tt.want {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCaseStudyPreview(t *testing.T) {
	cs := models.CaseStudy{Slug: "retail", Title: "Retail", Excerpt: "Short", Description: "Long"}
	p := CaseStudyPreview(cs, base)
	if p.Title != "Retail" || p.Description != "Short" || p.OpenGraph.Images[0] != base+"/og-images/projects/retail.png" {
		t.Errorf("preview = %+v", p)
	}

	cs.Screenshots = []models.Screenshot{{Src: "shots/1.png"}}
	if got := CaseStudyPreview(cs, base).OpenGraph.Images[0]; got != base+"/shots/1.png" {
		t.Errorf("screenshot image = %s", got)
	}

	cs.SEO = &models.SEO{Title: "SEO Title", OpenGraph: &models.OpenGraph{Images: models.StringList{"https://cdn/x.png"}}}
	p = CaseStudyPreview(cs, base)
	if p.Title != "SEO Title" || p.OpenGraph.Images[0] != "https://cdn/x.png" {
		t.Errorf("seo preview = %+v", p)
	}
}

func TestOfferingPreview(t *testing.T) {
	o := models.Offering{Slug: "cloud", Title: "Cloud", ShortDescription: "Short", Description: "Long"}
	p := OfferingPreview(o, base)
	if p.Description != "Short" || p.OpenGraph.Images[0] != base+"/og-images/services/cloud.png" {
		t.Errorf("preview = %+v", p)
	}
	o.SEO = &models.SEO{OpenGraph: &models.OpenGraph{Images: models.StringList{"/og/list.png"}}}
	if got := OfferingPreview(o, base).OpenGraph.Images[0]; got != base+"/og/list.png" {
		t.Errorf("images[0] fallback = %s", got)
	}
	o.SEO.OpenGraph.Image = "/og/main.png"
	if got := OfferingPreview(o, base).OpenGraph.Images[0]; got != base+"/og/main.png" {
		t.Errorf("image preferred = %s", got)
	}
}
