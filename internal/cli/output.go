// Package cli provides output helpers for the insightexus command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/insightexus/site/internal/models"
	"github.com/insightexus/site/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact prints one line per hit: kind, path, title.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is the API response body, for piping into other tools.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat returns the format named s, or an error listing the valid names.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(strings.ToLower(s)); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, compact, or json)", s)
}

// WriteSearchResults writes response to w in the given format.
// Unknown formats are written as text.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, h := range response.Results {
			if _, err := fmt.Fprintf(w, "%-8s %-40s %s\n", h.Kind, h.Path, h.Title); err != nil {
				return err
			}
		}
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	switch response.State {
	case models.StateIdle:
		fmt.Fprintln(w, "Type to search articles, case studies, and services.")
		return
	case models.StateEmpty:
		fmt.Fprintf(w, "\nNo results for %q (%dms)\n", response.Query, response.QueryTime)
		if len(response.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(response.Suggestions, ", "))
		}
		return
	}

	fmt.Fprintf(w, "\nFound %d results in %dms", response.Total, response.QueryTime)
	if response.AutoFuzzy {
		fmt.Fprint(w, " (fuzzy)")
	}
	fmt.Fprint(w, "\n\n")
	for i, h := range response.Results {
		writeOneResult(w, i+1, h)
	}
}

func writeOneResult(w io.Writer, rank int, h models.Hit) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	if h.Score > 0 {
		fmt.Fprintf(w, "%d. [%s] %s | Score: %.4f\n", rank, h.Kind, h.Title, h.Score)
	} else {
		fmt.Fprintf(w, "%d. [%s] %s\n", rank, h.Kind, h.Title)
	}
	fmt.Fprintf(w, "Path: %s\n", h.Path)
	if h.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", h.Category)
	}
	if len(h.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(h.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(utils.CollapseSpace(h.Summary), 200))
}
