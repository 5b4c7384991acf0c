// Package search provides the site quick-search index: content normalization and
// case-insensitive substring matching over the normalized records.
package search

import (
	"strings"

	"github.com/insightexus/site/internal/models"
	"go.uber.org/zap"
)

// MaxResults is the positional cap applied to every quick-search result list.
const MaxResults = 5

// Index is an immutable, normalized record set built from one load of the content
// collections. It is safe for concurrent Query calls.
type Index struct {
	records []models.ContentRecord
	lowered []loweredRecord
}

// loweredRecord holds the lower-cased searchable fields of the record at the same position.
type loweredRecord struct {
	title    string
	summary  string
	category string
	tags     []string
}

// IndexOption configures index construction.
type IndexOption func(*indexOptions)

type indexOptions struct {
	logger *zap.Logger
}

// WithLogger logs records skipped during normalization at debug level.
func WithLogger(l *zap.Logger) IndexOption {
	return func(o *indexOptions) { o.logger = l }
}

// NewIndex normalizes c and returns a ready index. The index is never updated in place;
// reloading content means building a new Index.
func NewIndex(c models.Collections, opts ...IndexOption) *Index {
	var o indexOptions
	for _, opt := range opts {
		opt(&o)
	}
	var onSkip SkipFunc
	if o.logger != nil {
		logger := o.logger
		onSkip = func(kind models.Kind, id string) {
			logger.Debug("content record skipped: missing title or summary",
				zap.String("kind", string(kind)), zap.String("identifier", id))
		}
	}
	return newIndexFromRecords(normalize(c, onSkip))
}

func newIndexFromRecords(records []models.ContentRecord) *Index {
	lowered := make([]loweredRecord, len(records))
	for i, r := range records {
		tags := make([]string, len(r.Tags))
		for j, tag := range r.Tags {
			tags[j] = lower(tag)
		}
		lowered[i] = loweredRecord{
			title:    lower(r.Title),
			summary:  lower(r.Summary),
			category: lower(r.Category),
			tags:     tags,
		}
	}
	return &Index{records: records, lowered: lowered}
}

// Query returns at most MaxResults records whose title, summary, category, or any tag
// contains q, ignoring case. Results keep normalized order; there is no scoring.
// An empty q returns nil. The query is not trimmed, so " " is a real query.
func (idx *Index) Query(q string) []models.ContentRecord {
	if q == "" || idx == nil {
		return nil
	}
	needle := lower(q)
	var out []models.ContentRecord
	for i := range idx.records {
		if !idx.lowered[i].matches(needle) {
			continue
		}
		out = append(out, idx.records[i])
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

// lower folds s for matching. unicode.ToLower maps U+0130 (capital I with dot above)
// to a plain "i"; browsers lower it to "i" followed by U+0307, so a query of "İ" must
// not match every "i". Final sigma is still folded to σ.
func lower(s string) string {
	if strings.ContainsRune(s, '\u0130') {
		s = strings.ReplaceAll(s, "\u0130", "i\u0307")
	}
	return strings.ToLower(s)
}

func (l *loweredRecord) matches(needle string) bool {
	if strings.Contains(l.title, needle) || strings.Contains(l.summary, needle) {
		return true
	}
	if l.category != "" && strings.Contains(l.category, needle) {
		return true
	}
	for _, tag := range l.tags {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

// Records returns a copy of the normalized record set in index order.
func (idx *Index) Records() []models.ContentRecord {
	if idx == nil {
		return nil
	}
	return append([]models.ContentRecord(nil), idx.records...)
}

// Len returns the number of normalized records.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// CountByKind returns how many records of each kind the index holds.
func (idx *Index) CountByKind() map[models.Kind]int {
	counts := map[models.Kind]int{
		models.KindArticle:   0,
		models.KindCaseStudy: 0,
		models.KindOffering:  0,
	}
	if idx == nil {
		return counts
	}
	for _, r := range idx.records {
		counts[r.Kind()]++
	}
	return counts
}
