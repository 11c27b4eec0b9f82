package service

import (
	"regexp"
	"strings"
)

// fuzzyTokenThreshold lets "kafe" match "cafe" without letting unrelated words
// through.
const fuzzyTokenThreshold = 0.85

var nonNamePunct = regexp.MustCompile(`[^\p{L}\p{N}\s'&.-]+`)

// normalizeName lowercases, strips stray punctuation and collapses whitespace.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonNamePunct.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// nameTokens splits a normalized name into tokens longer than 2 runes, deduped.
// Short tokens ("of", "st") carry no signal for business names.
func nameTokens(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'&.-")
		if len([]rune(f)) <= 2 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// tokensMatch: equal, one contains the other, or a near-typo by edit distance.
// The relation is symmetric, which keeps NameSimilarity symmetric overall.
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return editSimilarity(a, b) >= fuzzyTokenThreshold
}

// NameSimilarity scores two business names in [0,1].
//
// Exact equality after normalization is 1.0 unconditionally. Otherwise the
// score is the matched-token count from both sides over the total token count,
// so identical strings give 1.0, disjoint token sets give 0.0, and adding a
// shared token never lowers the score. Symmetry holds because the per-pair
// token relation is symmetric and both directions are counted.
func NameSimilarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	ta, tb := nameTokens(na), nameTokens(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	matched := 0
	for _, x := range ta {
		for _, y := range tb {
			if tokensMatch(x, y) {
				matched++
				break
			}
		}
	}
	for _, y := range tb {
		for _, x := range ta {
			if tokensMatch(y, x) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(ta)+len(tb))
}
