package keyword

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/insightexus/site/internal/models"
)

// searchable fields, in the order they are queried.
var textFields = []string{"title", "summary", "tags", "category"}

// BleveIndex implements KeywordIndex using an in-memory Bleve index.
// Content is small and rebuilt on every reload, so nothing is persisted.
type BleveIndex struct {
	index bleve.Index

	mu      sync.RWMutex
	records map[string]models.ContentRecord
}

// NewBleveIndex creates an empty in-memory index.
func NewBleveIndex() (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so "aws" matches "AWS" exactly
	// and product names are not mangled by an English stemmer.
	textFieldMapping.Analyzer = standard.Name
	for _, f := range textFields {
		docMapping.AddFieldMappingsAt(f, textFieldMapping)
	}
	docMapping.AddFieldMappingsAt("kind", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("record", docMapping)
	im.DefaultType = "record"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index, records: make(map[string]models.ContentRecord)}, nil
}

// BuildBleveIndex creates an in-memory index holding records.
func BuildBleveIndex(ctx context.Context, records []models.ContentRecord) (*BleveIndex, error) {
	idx, err := NewBleveIndex()
	if err != nil {
		return nil, err
	}
	if err := idx.IndexRecords(ctx, records); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return idx, nil
}

// IndexRecords indexes records in a single batch.
func (b *BleveIndex) IndexRecords(ctx context.Context, records []models.ContentRecord) error {
	batch := b.index.NewBatch()
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := map[string]interface{}{
			"title":    r.Title,
			"summary":  r.Summary,
			"tags":     r.Tags,
			"category": r.Category,
			"kind":     string(r.Kind()),
		}
		if err := batch.Index(RecordID(r), doc); err != nil {
			return fmt.Errorf("batch index %s: %w", RecordID(r), err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("Bleve batch failed: %w", err)
	}
	b.mu.Lock()
	for _, r := range records {
		b.records[RecordID(r)] = r
	}
	b.mu.Unlock()
	return nil
}

// Search runs a disjunction of per-field match queries, with the title clause boosted,
// optionally restricted to one kind. Hits come back in score order.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error) {
	titleBoost := 1.0
	fuzziness := 0
	var kind models.Kind
	if opts != nil {
		if opts.TitleBoost > 0 {
			titleBoost = opts.TitleBoost
		}
		if opts.FuzzyEnabled {
			fuzziness = 1
			if opts.Fuzziness > 0 {
				fuzziness = opts.Fuzziness
			}
		}
		kind = opts.Kind
	}
	if limit <= 0 {
		limit = 10
	}

	clauses := make([]blevequery.Query, 0, len(textFields))
	for _, f := range textFields {
		mq := bleve.NewMatchQuery(query)
		mq.SetField(f)
		if fuzziness > 0 {
			mq.SetFuzziness(fuzziness)
		}
		if f == "title" && titleBoost != 1.0 {
			mq.SetBoost(titleBoost)
		}
		clauses = append(clauses, mq)
	}
	var q blevequery.Query = bleve.NewDisjunctionQuery(clauses...)
	if kind != "" {
		kq := bleve.NewTermQuery(string(kind))
		kq.SetField("kind")
		q = bleve.NewConjunctionQuery(q, kq)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*KeywordResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r, ok := b.records[hit.ID]
		if !ok {
			continue
		}
		out = append(out, &KeywordResult{Record: r, Score: hit.Score})
	}
	return out, nil
}

// Suggest returns up to max dictionary terms within edit distance 2 of any query term
// that is not itself in the index. Closer and more frequent terms come first.
func (b *BleveIndex) Suggest(query string, max int) ([]string, error) {
	if max <= 0 {
		max = 3
	}
	freq, err := b.termFrequencies()
	if err != nil {
		return nil, err
	}
	var out []string
	seen := make(map[string]struct{})
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if _, known := freq[term]; known {
			continue
		}
		for _, s := range closestTerms(term, freq, 2) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			if len(out) == max {
				return out, nil
			}
		}
	}
	return out, nil
}

// termFrequencies collects every indexed term across the text fields with its doc count.
func (b *BleveIndex) termFrequencies() (map[string]int, error) {
	freq := make(map[string]int)
	for _, f := range textFields {
		dict, err := b.index.FieldDict(f)
		if err != nil {
			return nil, fmt.Errorf("field dict %s: %w", f, err)
		}
		for {
			entry, err := dict.Next()
			if err != nil {
				_ = dict.Close()
				return nil, fmt.Errorf("field dict %s: %w", f, err)
			}
			if entry == nil {
				break
			}
			freq[entry.Term] += int(entry.Count)
		}
		_ = dict.Close()
	}
	return freq, nil
}

// DocCount returns the total number of documents in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close releases the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
