package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"dinescan-service/internal/resolve/model"
)

// Common dish nouns: when one appears as a leading or trailing token, it splits
// the dish from the restaurant name.
var dishNouns = []string{
	"biryani", "burrito", "pizza", "burger", "taco", "tacos", "sushi",
	"ramen", "pasta", "salad", "sandwich", "curry", "noodles", "dumplings",
	"wings", "steak", "falafel", "shawarma", "pho", "bagel", "wrap",
	"bowl", "soup", "fries",
}

// City and borough prefixes users type in front of restaurant names.
var cityPrefixes = []string{
	"nyc", "new york", "brooklyn", "manhattan", "queens", "bronx",
	"staten island", "jersey city", "hoboken", "downtown", "midtown",
	"uptown",
}

var (
	reCost     = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)
	reAtFromIn = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|from|in)\s+(.+)$`)
	reDash     = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)
	rePriceTok = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:dollars|bucks)\b`)
	reVs       = regexp.MustCompile(`(?i)\s+(?:vs\.?|versus)\s+`)
	reCompare  = regexp.MustCompile(`(?i)^compare\s+`)

	reDishNoun = regexp.MustCompile(`(?i)\b(` + strings.Join(dishNouns, "|") + `)\b`)
)

// parsedOption is one side of a comparison after free-text parsing.
type parsedOption struct {
	Restaurant string // as parsed, uncleaned
	Dish       string
	Cost       float64
	HasCost    bool
	Calories   float64
	Quantity   string
	Original   string // the label echoed back on resolution failure
}

// parseFreeText splits "dish + cost + restaurant in arbitrary order" into its
// parts. Ordered patterns, first hit wins; an unmatched string is a bare
// restaurant name.
func parseFreeText(s string) parsedOption {
	opt := parsedOption{Original: strings.TrimSpace(s)}
	text := opt.Original

	if m := reCost.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			opt.Cost = v
			opt.HasCost = true
		}
		text = strings.TrimSpace(reCost.ReplaceAllString(text, " "))
		text = strings.Join(strings.Fields(text), " ")
	}

	// "X at/from/in Y" → dish X at restaurant Y
	if m := reAtFromIn.FindStringSubmatch(text); m != nil {
		opt.Dish = strings.TrimSpace(m[1])
		opt.Restaurant = strings.TrimSpace(m[2])
		return opt
	}

	// "X, Y" and "X - Y" → restaurant X, dish Y
	if i := strings.Index(text, ","); i >= 0 {
		opt.Restaurant = strings.TrimSpace(text[:i])
		opt.Dish = strings.TrimSpace(text[i+1:])
		return opt
	}
	if m := reDash.FindStringSubmatch(text); m != nil {
		opt.Restaurant = strings.TrimSpace(m[1])
		opt.Dish = strings.TrimSpace(m[2])
		return opt
	}

	// dish noun as trailing or leading token
	fields := strings.Fields(text)
	if len(fields) >= 2 {
		if isDishNoun(fields[len(fields)-1]) {
			opt.Dish = fields[len(fields)-1]
			opt.Restaurant = strings.Join(fields[:len(fields)-1], " ")
			return opt
		}
		if isDishNoun(fields[0]) {
			opt.Dish = fields[0]
			opt.Restaurant = strings.Join(fields[1:], " ")
			return opt
		}
	}

	opt.Restaurant = text
	return opt
}

func isDishNoun(tok string) bool {
	tok = strings.ToLower(strings.Trim(tok, ".,!?"))
	for _, d := range dishNouns {
		if tok == d {
			return true
		}
	}
	return false
}

// cleanRestaurantName strips city prefixes, dish-noun substrings and leftover
// price tokens so the search term is just the name.
func cleanRestaurantName(s string) string {
	out := strings.TrimSpace(s)
	lower := strings.ToLower(out)
	for _, city := range cityPrefixes {
		if strings.HasPrefix(lower, city+" ") {
			out = strings.TrimSpace(out[len(city):])
			lower = strings.ToLower(out)
		}
	}
	out = reDishNoun.ReplaceAllString(out, " ")
	out = reCost.ReplaceAllString(out, " ")
	out = rePriceTok.ReplaceAllString(out, " ")
	return strings.Join(strings.Fields(out), " ")
}

// SplitComparisonQuery splits a single "compare X vs Y" query into its two
// sides. ok is false when there is no recognizable "vs" separator.
func SplitComparisonQuery(q string) (string, string, bool) {
	q = strings.TrimSpace(reCompare.ReplaceAllString(strings.TrimSpace(q), ""))
	parts := reVs.Split(q, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// findBestMatch selects from one strategy's result set. Exact name equality
// wins outright; else the business containing the most search tokens (at least
// 2, or all of them when the query has fewer); else any overlap at all. Ties
// keep the first-found, which preserves provider ordering.
func findBestMatch(search string, list []model.GeoBusiness) *model.GeoBusiness {
	if len(list) == 0 {
		return nil
	}
	q := normalizeName(search)
	if q == "" {
		return nil
	}
	for i := range list {
		if normalizeName(list[i].Name) == q {
			return &list[i]
		}
	}

	toks := nameTokens(q)
	if len(toks) == 0 {
		return nil
	}
	need := 2
	if len(toks) < 2 {
		need = len(toks)
	}

	bestCount := 0
	bestIdx := -1
	for i := range list {
		name := normalizeName(list[i].Name)
		count := 0
		for _, t := range toks {
			if strings.Contains(name, t) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestCount >= need {
		return &list[bestIdx]
	}
	if bestIdx >= 0 && bestCount >= 1 {
		return &list[bestIdx]
	}
	return nil
}

const (
	narrowLimit = 5
	broadLimit  = 10
)

// resolveFreeText runs the cascading search strategies until one yields a
// match. When every strategy comes up empty-handed but the provider did return
// something, the first raw hit is better than failing outright.
func (p *Pipeline) resolveFreeText(ctx context.Context, opt parsedOption, coords model.Coordinates) (*model.GeoBusiness, model.MatchStrategy, bool) {
	cleaned := cleanRestaurantName(opt.Restaurant)
	degraded := false

	type strategy struct {
		name  model.MatchStrategy
		terms []string
		limit int
	}
	strategies := []strategy{
		{model.StrategyCleanedNarrow, []string{cleaned}, narrowLimit},
		{model.StrategyOriginalNarrow, []string{opt.Restaurant}, narrowLimit},
		{model.StrategyCleanedBroad, []string{cleaned}, broadLimit},
		{model.StrategyWordBroad, longWords(cleaned), broadLimit},
	}

	var lastRaw []model.GeoBusiness
	for _, st := range strategies {
		for _, term := range st.terms {
			if strings.TrimSpace(term) == "" {
				continue
			}
			list, failed := p.search.search(ctx, term, coords, st.limit, "")
			if failed {
				degraded = true
			}
			if len(list) == 0 {
				continue
			}
			lastRaw = list
			if m := findBestMatch(term, list); m != nil {
				return m, st.name, degraded
			}
		}
	}

	if len(lastRaw) > 0 {
		return &lastRaw[0], model.StrategyLastResort, degraded
	}
	return nil, model.StrategyNoMatch, degraded
}

func longWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}
