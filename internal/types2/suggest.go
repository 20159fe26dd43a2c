package types2

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggest returns the candidate closest to name, or "" if none is close
// enough to be a plausible typo. Ties go to the earlier candidate.
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	best, bestDist := -1, 0
	consider := func(i, dist int) {
		if candidates[i] == name {
			return
		}
		if best < 0 || dist < bestDist || (dist == bestDist && i < best) {
			best, bestDist = i, dist
		}
	}

	// Names that contain the misspelling as a subsequence ("gret" -> "greet").
	for _, r := range fuzzy.RankFindFold(name, candidates) {
		if r.Distance <= len(name) {
			consider(r.OriginalIndex, r.Distance)
		}
	}
	// Plain typos ("whp" -> "who").
	limit := maxEdits(name)
	lower := strings.ToLower(name)
	for i, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(cand)); d <= limit {
			consider(i, d)
		}
	}
	if best < 0 {
		return ""
	}
	return candidates[best]
}

func maxEdits(name string) int {
	if n := len(name) / 3; n > 1 {
		return n
	}
	return 1
}
