package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"dinescan-service/internal/resolve/model"
)

const maxReviews = 20

// enrich fetches details and reviews for a matched business and derives the
// profile. Both fetches are independently fail-soft: a dead details endpoint
// falls back to the search snapshot, dead reviews just mean an empty list.
func (p *Pipeline) enrich(ctx context.Context, biz model.GeoBusiness) (*model.EnrichedProfile, []string) {
	var degraded []string

	details, err := p.dir.Details(ctx, biz.ID)
	if err != nil {
		p.logger.Warn().Err(err).Str("id", biz.ID).Msg("details degraded")
		degraded = append(degraded, "details")
		details = nil
	}

	reviews, err := p.dir.Reviews(ctx, biz.ID, maxReviews)
	if err != nil {
		p.logger.Warn().Err(err).Str("id", biz.ID).Msg("reviews degraded")
		degraded = append(degraded, "reviews")
		reviews = nil
	}

	return BuildProfile(biz, details, reviews), degraded
}

// BuildProfile derives the enriched profile from whatever data survived the
// fetches. Pure function over (business, details, reviews); no ML, keyword
// heuristics only.
func BuildProfile(biz model.GeoBusiness, details *model.BusinessDetails, reviews []model.Review) *model.EnrichedProfile {
	name := biz.Name
	rating := biz.Rating
	reviewCount := biz.ReviewCount
	categories := biz.Categories
	var photos []string
	if details != nil {
		if details.Name != "" {
			name = details.Name
		}
		if details.Rating > 0 {
			rating = details.Rating
		}
		if details.ReviewCount > 0 {
			reviewCount = details.ReviewCount
		}
		if len(details.Categories) > 0 {
			categories = details.Categories
		}
		photos = details.Photos
	}

	return &model.EnrichedProfile{
		Summary:       buildSummary(name, categories, rating, reviewCount, reviews),
		Highlights:    extractHighlights(reviews),
		PopularDishes: extractDishes(reviews),
		DietaryLabels: dietaryLabels(categories, reviews),
		Photos:        photos,
	}
}

func buildSummary(name string, categories []string, rating float64, reviewCount int, reviews []model.Review) string {
	kind := "restaurant"
	if len(categories) > 0 {
		kind = strings.ToLower(categories[0])
	}
	s := fmt.Sprintf("%s is a %s spot rated %.1f stars across %d reviews.", name, kind, rating, reviewCount)
	if len(reviews) > 0 {
		if lead := leadingSentence(reviews[0].Text); lead != "" {
			s += " " + lead
			if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
				s += "."
			}
		}
	}
	return s
}

// leadingSentence returns the text up to and including the first terminator.
func leadingSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return strings.TrimSpace(text[:i+1])
		}
	}
	return text
}

var positiveKeywords = []string{
	"amazing", "great", "delicious", "love", "best", "excellent",
	"fantastic", "perfect", "favorite", "incredible",
}

const maxHighlights = 3

func extractHighlights(reviews []model.Review) []string {
	var out []string
	for _, rv := range reviews {
		lead := leadingSentence(rv.Text)
		if lead == "" {
			continue
		}
		lower := strings.ToLower(lead)
		for _, kw := range positiveKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, lead)
				break
			}
		}
		if len(out) == maxHighlights {
			break
		}
	}
	return out
}

const maxDishes = 5

// ignored qualifier words that would make "the pizza" a dish name.
var dishQualifierStop = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "my": {}, "our": {}, "their": {},
	"his": {}, "her": {}, "this": {}, "that": {}, "some": {}, "any": {},
	"and": {}, "of": {},
}

var reDishPhrase = regexp.MustCompile(`(?i)\b(?:([a-z]+)\s+)?` +
	`(burger|pizza|pasta|taco|burrito|sandwich|salad|soup|noodle|ramen|sushi|roll|wing|steak|biryani|curry|bowl|fries|dumpling|wrap|bagel)s?\b`)

// extractDishes pulls noun phrases around a fixed set of food-type nouns from
// review text.
func extractDishes(reviews []model.Review) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rv := range reviews {
		for _, m := range reDishPhrase.FindAllStringSubmatch(rv.Text, -1) {
			qualifier := strings.ToLower(m[1])
			noun := strings.ToLower(m[2])
			phrase := noun
			if qualifier != "" {
				if _, stop := dishQualifierStop[qualifier]; !stop {
					phrase = qualifier + " " + noun
				}
			}
			if _, ok := seen[phrase]; ok {
				continue
			}
			seen[phrase] = struct{}{}
			out = append(out, phrase)
			if len(out) == maxDishes {
				return out
			}
		}
	}
	return out
}

// dietaryKeywords maps text markers onto display labels.
var dietaryKeywords = []struct {
	keyword string
	label   string
}{
	{"vegan", "Vegan"},
	{"vegetarian", "Vegetarian"},
	{"gluten-free", "Gluten-Free"},
	{"gluten free", "Gluten-Free"},
	{"halal", "Halal"},
	{"kosher", "Kosher"},
}

func dietaryLabels(categories []string, reviews []model.Review) []string {
	var corpus strings.Builder
	for _, c := range categories {
		corpus.WriteString(strings.ToLower(c))
		corpus.WriteByte(' ')
	}
	for _, rv := range reviews {
		corpus.WriteString(strings.ToLower(rv.Text))
		corpus.WriteByte(' ')
	}
	text := corpus.String()

	seen := make(map[string]struct{})
	var out []string
	for _, dk := range dietaryKeywords {
		if _, ok := seen[dk.label]; ok {
			continue
		}
		if strings.Contains(text, dk.keyword) {
			seen[dk.label] = struct{}{}
			out = append(out, dk.label)
		}
	}
	return out
}
