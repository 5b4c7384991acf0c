package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/keyword"
	"github.com/insightexus/site/internal/metrics"
	"github.com/insightexus/site/internal/models"
	"go.uber.org/zap"
)

// retireDelay is how long a replaced full-text index stays open for in-flight queries.
const retireDelay = 30 * time.Second

// generation is one content load: the quick-search index and the full-text index built from it.
type generation struct {
	quick    *Index
	fulltext keyword.KeywordIndex
	builtAt  time.Time
}

// Engine serves quick and full-text search over the current content generation.
// Rebuild swaps in a new generation atomically; queries never block on a rebuild.
type Engine struct {
	config *config.SearchConfig
	logger *zap.Logger
	// buildKeyword is replaceable in tests.
	buildKeyword func(ctx context.Context, records []models.ContentRecord) (keyword.KeywordIndex, error)

	current atomic.Pointer[generation]
}

// NewEngine creates an engine with an empty generation.
func NewEngine(cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		config: cfg,
		logger: logger,
		buildKeyword: func(ctx context.Context, records []models.ContentRecord) (keyword.KeywordIndex, error) {
			return keyword.BuildBleveIndex(ctx, records)
		},
	}
	e.current.Store(&generation{quick: newIndexFromRecords(nil)})
	return e
}

// Rebuild normalizes c from scratch and installs new quick and full-text indexes.
// On error the previous generation keeps serving.
func (e *Engine) Rebuild(ctx context.Context, c models.Collections) error {
	quick := NewIndex(c, WithLogger(e.logger))
	fulltext, err := e.buildKeyword(ctx, quick.records)
	if err != nil {
		return fmt.Errorf("build full-text index: %w", err)
	}

	old := e.current.Swap(&generation{quick: quick, fulltext: fulltext, builtAt: time.Now()})
	if old != nil && old.fulltext != nil {
		retired := old.fulltext
		time.AfterFunc(retireDelay, func() {
			if err := retired.Close(); err != nil {
				e.logger.Warn("close retired full-text index", zap.Error(err))
			}
		})
	}

	for kind, n := range quick.CountByKind() {
		metrics.SetIndexedRecords(string(kind), n)
	}
	e.logger.Info("search index rebuilt", zap.Int("records", quick.Len()))
	return nil
}

// Index returns the current quick-search index.
func (e *Engine) Index() *Index {
	return e.current.Load().quick
}

// BuiltAt returns when the current generation was built; zero before the first Rebuild.
func (e *Engine) BuiltAt() time.Time {
	return e.current.Load().builtAt
}

// Quick runs the positional quick search. It never fails: an empty query yields the
// idle state and no hits.
func (e *Engine) Quick(q string) *models.SearchResponse {
	start := time.Now()
	records := e.Index().Query(q)
	hits := make([]models.Hit, len(records))
	for i, r := range records {
		hits[i] = r.ToHit()
	}
	resp := models.NewSearchResponse(q, hits, time.Since(start).Milliseconds())
	metrics.RecordSearch("quick", string(resp.State))
	return resp
}

// FullText runs ranked search. When the exact search finds nothing and auto-fuzzy is
// enabled it retries with typo tolerance; if that also finds nothing the response
// carries spelling suggestions.
func (e *Engine) FullText(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	if err := ProcessQuery(query, e.config); err != nil {
		return nil, err
	}
	gen := e.current.Load()
	if gen.fulltext == nil {
		resp := models.NewSearchResponse(query.Query, nil, time.Since(start).Milliseconds())
		metrics.RecordSearch("fulltext", string(resp.State))
		return resp, nil
	}

	opts := &keyword.SearchOptions{
		TitleBoost:   e.config.TitleBoost,
		FuzzyEnabled: query.FuzzyEnabled,
		Fuzziness:    query.Fuzziness,
		Kind:         query.Kind,
	}
	results, err := gen.fulltext.Search(ctx, query.Query, query.Limit, opts)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}

	autoFuzzy := false
	if len(results) == 0 && !query.FuzzyEnabled && e.config.AutoFuzzyOrDefault() {
		opts.FuzzyEnabled = true
		results, err = gen.fulltext.Search(ctx, query.Query, query.Limit, opts)
		if err != nil {
			return nil, fmt.Errorf("fuzzy search failed: %w", err)
		}
		autoFuzzy = len(results) > 0
	}

	hits := make([]models.Hit, 0, len(results))
	for _, r := range results {
		hit := r.Record.ToHit()
		hit.Score = r.Score
		hits = append(hits, hit)
	}
	resp := models.NewSearchResponse(query.Query, hits, time.Since(start).Milliseconds())
	resp.AutoFuzzy = autoFuzzy

	if len(hits) == 0 && e.config.MaxSuggestions > 0 {
		suggestions, err := gen.fulltext.Suggest(query.Query, e.config.MaxSuggestions)
		if err != nil {
			e.logger.Debug("suggestions unavailable", zap.Error(err))
		} else {
			resp.Suggestions = suggestions
		}
	}
	metrics.RecordSearch("fulltext", string(resp.State))
	return resp, nil
}

// FullTextDocCount returns how many records the current full-text index holds.
func (e *Engine) FullTextDocCount() (uint64, error) {
	gen := e.current.Load()
	if gen.fulltext == nil {
		return 0, nil
	}
	return gen.fulltext.DocCount()
}

// Close releases the current full-text index.
func (e *Engine) Close() error {
	gen := e.current.Swap(&generation{quick: newIndexFromRecords(nil)})
	if gen != nil && gen.fulltext != nil {
		return gen.fulltext.Close()
	}
	return nil
}
