package models

import (
	"testing"
)

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name      string
		query     *SearchQuery
		wantErr   bool
		wantLimit int
	}{
		{"empty query", &SearchQuery{Query: ""}, true, 0},
		{"valid query", &SearchQuery{Query: "hello", Limit: 5}, false, 5},
		{"sets default limit", &SearchQuery{Query: "x", Limit: 0}, false, 10},
		{"caps limit at max", &SearchQuery{Query: "x", Limit: 200}, false, 50},
		{"whitespace is a query", &SearchQuery{Query: " "}, false, 10},
		{"fuzziness two", &SearchQuery{Query: "x", Fuzziness: 2}, false, 10},
		{"fuzziness too large", &SearchQuery{Query: "x", Fuzziness: 3}, true, 0},
		{"known kind", &SearchQuery{Query: "x", Kind: KindOffering}, false, 10},
		{"unknown kind", &SearchQuery{Query: "x", Kind: "podcast"}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate(10, 50)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.query.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", tt.query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestNewSearchResponse_State(t *testing.T) {
	hit := Hit{Kind: KindArticle, Title: "t", Identifier: "t", Path: "/blog/t"}
	tests := []struct {
		name  string
		query string
		hits  []Hit
		want  SearchState
	}{
		{"idle", "", nil, StateIdle},
		{"empty", "zzz", nil, StateEmpty},
		{"results", "t", []Hit{hit}, StateResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSearchResponse(tt.query, tt.hits, 0)
			if resp.State != tt.want {
				t.Errorf("state = %s, want %s", resp.State, tt.want)
			}
			if resp.Results == nil {
				t.Error("results should never be nil")
			}
			if resp.Total != len(tt.hits) {
				t.Errorf("total = %d, want %d", resp.Total, len(tt.hits))
			}
		})
	}
}
