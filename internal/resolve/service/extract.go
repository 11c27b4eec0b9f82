package service

import (
	"regexp"
	"strings"

	"dinescan-service/internal/resolve/model"
)

const maxCandidates = 8

// Words that mark a block as restaurant signage. A hit promotes the block to
// the top tier.
var restaurantKeywords = []string{
	"restaurant", "cafe", "caffe", "bistro", "grill", "diner", "kitchen",
	"pizzeria", "bakery", "eatery", "tavern", "cantina", "trattoria",
	"steakhouse", "taqueria", "deli", "bbq", "sushi",
}

// Sign noise that never names a business.
var stopWords = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
	"open": {}, "closed": {}, "menu": {}, "hours": {}, "daily": {},
	"welcome": {}, "special": {}, "specials": {}, "sale": {}, "est": {},
	"since": {}, "the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"our": {}, "new": {}, "now": {}, "free": {}, "wifi": {}, "parking": {},
}

var (
	reProperNounStart = regexp.MustCompile(`^[A-Z][a-z]`)
	reProperNounChars = regexp.MustCompile(`^[A-Za-z\s'&.-]+$`)
	reAllCapsChars    = regexp.MustCompile(`^[A-Z][A-Z\s'&-]+$`)
)

// ExtractCandidates turns raw OCR blocks into a ranked, deduplicated list of
// plausible business names, best first. Pure and deterministic: no network,
// same input gives the same output.
func ExtractCandidates(blocks []string) []model.TextCandidate {
	var keyword, proper, caps []model.TextCandidate

	for _, raw := range blocks {
		text := strings.TrimSpace(raw)
		n := len([]rune(text))
		if n < 3 || n > 50 {
			continue
		}
		if isStopPhrase(text) {
			continue
		}
		if isNumericOrCurrency(text) {
			continue
		}

		switch {
		case containsKeyword(text):
			keyword = append(keyword, model.TextCandidate{Text: text, Tier: model.TierKeyword})
		case reProperNounStart.MatchString(text) && reProperNounChars.MatchString(text):
			proper = append(proper, model.TextCandidate{Text: text, Tier: model.TierProperNoun})
		case reAllCapsChars.MatchString(text):
			caps = append(caps, model.TextCandidate{Text: text, Tier: model.TierAllCaps})
		}
	}

	// keyword hits go first, then proper nouns, then all-caps; insertion order
	// inside each tier is the order on the sign
	merged := make([]model.TextCandidate, 0, len(keyword)+len(proper)+len(caps))
	merged = append(merged, keyword...)
	merged = append(merged, proper...)
	merged = append(merged, caps...)

	seen := make(map[string]struct{}, len(merged))
	out := make([]model.TextCandidate, 0, maxCandidates)
	for _, c := range merged {
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c)
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}

// isStopPhrase rejects blocks that are a stop-word, or nothing but stop-words
// ("OPEN DAILY").
func isStopPhrase(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if _, ok := stopWords[strings.Trim(f, ".,!:;")]; !ok {
			return false
		}
	}
	return true
}

// isNumericOrCurrency rejects prices, years and house numbers: anything with
// no letters at all.
func isNumericOrCurrency(text string) bool {
	for _, r := range text {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

func containsKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range restaurantKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
