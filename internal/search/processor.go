package search

import (
	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/models"
)

// ProcessQuery validates a full-text query and applies the configured limits.
func ProcessQuery(query *models.SearchQuery, cfg *config.SearchConfig) error {
	return query.Validate(cfg.DefaultLimit, cfg.MaxLimit)
}
