// Package keyword provides ranked full-text search over normalized content records.
package keyword

import (
	"context"

	"github.com/insightexus/site/internal/models"
)

// SearchOptions optional parameters for keyword search. Nil means use defaults.
type SearchOptions struct {
	// TitleBoost multiplies the score contribution from title matches. Use 1.0 for no boost.
	TitleBoost float64
	// FuzzyEnabled enables typo-tolerant matching.
	FuzzyEnabled bool
	// Fuzziness is the maximum Levenshtein edit distance for fuzzy matching (1 or 2).
	// Default is 1 when FuzzyEnabled is true.
	Fuzziness int
	// Kind restricts hits to one content kind. Empty means all kinds.
	Kind models.Kind
}

// KeywordIndex defines full-text search operations over content records.
type KeywordIndex interface {
	// IndexRecords adds records to the index. Records are keyed by kind and identifier,
	// so indexing the same record twice replaces it.
	IndexRecords(ctx context.Context, records []models.ContentRecord) error
	Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error)
	// Suggest returns indexed terms close to each unknown query term, best first.
	Suggest(query string, max int) ([]string, error)
	DocCount() (uint64, error)
	Close() error
}

// KeywordResult is a single ranked hit.
type KeywordResult struct {
	Record models.ContentRecord
	Score  float64
}

// RecordID is the document id a record is stored under.
func RecordID(r models.ContentRecord) string {
	return string(r.Kind()) + ":" + r.Identifier
}
