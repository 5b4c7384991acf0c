package models

import "fmt"

// SearchState distinguishes "nothing typed yet" from "typed, nothing found".
type SearchState string

const (
	// StateIdle means the query was empty; no search ran.
	StateIdle SearchState = "idle"
	// StateResults means at least one record matched.
	StateResults SearchState = "results"
	// StateEmpty means the query ran and matched nothing.
	StateEmpty SearchState = "empty"
)

// MaxFuzziness is the largest edit distance a fuzzy full-text search accepts.
const MaxFuzziness = 2

// SearchQuery is a search request. Quick search reads only Query; the full-text
// endpoint also honours Limit, FuzzyEnabled, Fuzziness, and Kind.
type SearchQuery struct {
	Query        string `json:"query"`
	Limit        int    `json:"limit,omitempty"`
	FuzzyEnabled bool   `json:"fuzzy_enabled,omitempty"`
	// Fuzziness is the edit distance for fuzzy matching; 0 means 1.
	Fuzziness int `json:"fuzziness,omitempty"`
	// Kind restricts results to one content kind; empty means all.
	Kind Kind `json:"kind,omitempty"`
}

// Validate checks a full-text query and normalizes its limit into [1, maxLimit].
// Quick search does not call Validate: an empty quick query is a valid idle state.
func (q *SearchQuery) Validate(defaultLimit, maxLimit int) error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Fuzziness < 0 || q.Fuzziness > MaxFuzziness {
		return fmt.Errorf("fuzziness must be between 0 and %d", MaxFuzziness)
	}
	if q.Kind != "" && !q.Kind.Valid() {
		return fmt.Errorf("unknown content kind: %q", q.Kind)
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return nil
}

// SearchResponse is the response for quick and full-text search.
type SearchResponse struct {
	Query     string      `json:"query"`
	State     SearchState `json:"state"`
	Results   []Hit       `json:"results"`
	Total     int         `json:"total"`
	QueryTime int64       `json:"query_time_ms"`
	// AutoFuzzy is set when a full-text search retried with fuzzy matching after
	// the exact search found nothing.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
	// Suggestions holds "Did you mean?" terms when a full-text search found nothing.
	Suggestions []string `json:"suggestions,omitempty"`
}

// NewSearchResponse builds a response from hits, deriving State from query and hit count.
func NewSearchResponse(query string, hits []Hit, elapsedMs int64) *SearchResponse {
	if hits == nil {
		hits = []Hit{}
	}
	state := StateResults
	switch {
	case query == "":
		state = StateIdle
	case len(hits) == 0:
		state = StateEmpty
	}
	return &SearchResponse{
		Query:     query,
		State:     state,
		Results:   hits,
		Total:     len(hits),
		QueryTime: elapsedMs,
	}
}
