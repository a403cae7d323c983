package hotels

import (
	"math"
	"strings"
)

// genericLodgingWords are stripped before token comparison so that two
// unrelated "Grand ... Hotel" properties do not look alike.
var genericLodgingWords = map[string]bool{
	"hotel":  true,
	"inn":    true,
	"resort": true,
	"lodge":  true,
	"suites": true,
	"palace": true,
	"grand":  true,
}

// NameSimilarity scores how likely two venue names refer to the same place,
// in [0,1]. Deterministic and cheap: exact match, substring containment, then
// Jaccard overlap of the remaining tokens with a bonus for two or more shared
// words. Good enough for same-chain/duplicate detection; not an embedding.
func NameSimilarity(name1, name2 string) float64 {
	if name1 == "" || name2 == "" {
		return 0.0
	}
	n1 := strings.ToLower(strings.TrimSpace(name1))
	n2 := strings.ToLower(strings.TrimSpace(name2))
	if n1 == "" || n2 == "" {
		return 0.0
	}
	if n1 == n2 {
		return 1.0
	}
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return 0.8
	}

	words1 := tokenSet(n1)
	words2 := tokenSet(n2)
	if len(words1) == 0 || len(words2) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range words1 {
		if words2[w] {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection

	score := float64(intersection) / float64(union)
	if intersection >= 2 {
		score += 0.2
	}
	return math.Min(score, 1.0)
}

func tokenSet(name string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(name) {
		if !genericLodgingWords[w] {
			set[w] = true
		}
	}
	return set
}
