package keyword

import "sort"

// closestTerms returns dictionary terms within maxDist edits of term, ordered by
// distance, then by frequency (desc), then alphabetically.
func closestTerms(term string, dict map[string]int, maxDist int) []string {
	type cand struct {
		term string
		dist int
		freq int
	}
	var cands []cand
	for t, f := range dict {
		d := len(t) - len(term)
		if d < 0 {
			d = -d
		}
		if d > maxDist || t == term {
			continue
		}
		if dist := levenshtein(term, t); dist <= maxDist {
			cands = append(cands, cand{term: t, dist: dist, freq: f})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		return cands[i].term < cands[j].term
	})
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.term
	}
	return out
}

// levenshtein is the rune-level edit distance between a and b, using two rows.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
