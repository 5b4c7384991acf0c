package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/models"
	"go.uber.org/zap"
)

func benchCollections(n int) models.Collections {
	var c models.Collections
	for i := 0; i < n; i++ {
		c.Articles = append(c.Articles, models.Article{
			Slug:       fmt.Sprintf("post-%d", i),
			Title:      fmt.Sprintf("Engineering note %d", i),
			Excerpt:    "Notes on cloud migration, data platforms, and delivery",
			Category:   "Engineering",
			Tags:       models.StringList{"cloud", "data"},
			Visibility: true,
		})
		c.Offerings = append(c.Offerings, models.Offering{
			Slug:        fmt.Sprintf("service-%d", i),
			Title:       fmt.Sprintf("Service %d", i),
			Description: "Managed operations",
			Features:    models.StringList{"monitoring"},
		})
	}
	return c
}

func BenchmarkIndexQuery(b *testing.B) {
	idx := NewIndex(benchCollections(500))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Query("operations")
	}
}

func BenchmarkIndexQueryNoMatch(b *testing.B) {
	idx := NewIndex(benchCollections(500))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Query("kubernetes")
	}
}

func BenchmarkEngineFullText(b *testing.B) {
	cfg := &config.SearchConfig{DefaultLimit: 10, MaxLimit: 50, TitleBoost: 3, MaxSuggestions: 3}
	engine := NewEngine(cfg, zap.NewNop())
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Rebuild(ctx, benchCollections(500)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.FullText(ctx, &models.SearchQuery{Query: "migration"})
	}
}
