package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero treats (0,0) as "no fix" — it is in the Atlantic, not at a restaurant.
func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lng == 0 }

// CandidateTier orders extracted sign-text candidates: keyword > proper noun > all-caps.
type CandidateTier string

const (
	TierKeyword    CandidateTier = "keyword"
	TierProperNoun CandidateTier = "proper_noun"
	TierAllCaps    CandidateTier = "all_caps"
)

type TextCandidate struct {
	Text string        `json:"text"`
	Tier CandidateTier `json:"tier"`
}

// GeoBusiness is an immutable snapshot from one places query, never cached across runs.
type GeoBusiness struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Coordinates    Coordinates `json:"coordinates"`
	DistanceMeters float64     `json:"distance_m"`
	Rating         float64     `json:"rating"`
	ReviewCount    int         `json:"review_count"`
	PriceLevel     int         `json:"price_level"`
	Categories     []string    `json:"categories,omitempty"`
}

// MatchScore exists only while scoring; it is never serialized or persisted.
type MatchScore struct {
	Candidate      TextCandidate
	Business       GeoBusiness
	NameSimilarity float64
	DistanceScore  float64
	Combined       float64
}

type MatchStrategy string

const (
	StrategyMatched        MatchStrategy = "matched"
	StrategyNoMatch        MatchStrategy = "no_match"
	StrategyCleanedNarrow  MatchStrategy = "cleaned_narrow"
	StrategyOriginalNarrow MatchStrategy = "original_narrow"
	StrategyCleanedBroad   MatchStrategy = "cleaned_broad"
	StrategyWordBroad      MatchStrategy = "word_broad"
	StrategyLastResort     MatchStrategy = "last_resort"
)

type MatchResult struct {
	Business        *GeoBusiness  `json:"business"`
	Confidence      float64       `json:"confidence"`
	StrategyUsed    MatchStrategy `json:"strategy"`
	CandidatesTried []string      `json:"candidates_tried,omitempty"`
}

type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating,omitempty"`
}

type BusinessDetails struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	PriceLevel  int      `json:"price_level"`
	Categories  []string `json:"categories,omitempty"`
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

// EnrichedProfile is a pure function of (business, reviews), recomputed on demand.
type EnrichedProfile struct {
	Summary       string   `json:"summary"`
	Highlights    []string `json:"highlights,omitempty"`
	PopularDishes []string `json:"popular_dishes,omitempty"`
	DietaryLabels []string `json:"dietary_labels,omitempty"`
	Photos        []string `json:"photos,omitempty"`
}

type ComparisonOption struct {
	RestaurantName    string  `json:"restaurant_name"`
	DishName          string  `json:"dish_name,omitempty"`
	PriceLevel        int     `json:"price_level,omitempty"`
	EstimatedCost     float64 `json:"estimated_cost"`
	EstimatedCalories float64 `json:"estimated_calories"`
	EstimatedQuantity string  `json:"estimated_quantity"`
	ValueScore        int     `json:"value_score"`
}

type OptionKind string

const (
	KindFreeText   OptionKind = "free_text"
	KindStructured OptionKind = "structured"
)

type StructuredOption struct {
	Restaurant string  `json:"restaurant"`
	Dish       string  `json:"dish,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
	Calories   float64 `json:"calories,omitempty"`
	Quantity   string  `json:"quantity,omitempty"`
}

// OptionInput is the tagged form of "string or structured object". The variant is
// decided once here, at decode time, instead of duck-typed at every consumer.
type OptionInput struct {
	Kind       OptionKind
	Raw        string
	Structured *StructuredOption
}

func FreeTextOption(s string) OptionInput {
	return OptionInput{Kind: KindFreeText, Raw: s}
}

func (o *OptionInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = OptionInput{Kind: KindFreeText, Raw: s}
		return nil
	}
	var st StructuredOption
	if err := json.Unmarshal(b, &st); err != nil {
		return fmt.Errorf("option must be a string or an object: %w", err)
	}
	*o = OptionInput{Kind: KindStructured, Structured: &st}
	return nil
}

func (o OptionInput) MarshalJSON() ([]byte, error) {
	if o.Kind == KindStructured && o.Structured != nil {
		return json.Marshal(o.Structured)
	}
	return json.Marshal(o.Raw)
}

// Label is the user-facing name of the side, used in "could not find" messages.
func (o OptionInput) Label() string {
	if o.Kind == KindStructured && o.Structured != nil {
		return o.Structured.Restaurant
	}
	return strings.TrimSpace(o.Raw)
}

func (o OptionInput) IsEmpty() bool {
	if o.Kind == KindStructured {
		return o.Structured == nil || strings.TrimSpace(o.Structured.Restaurant) == ""
	}
	return strings.TrimSpace(o.Raw) == ""
}

type UserProfile struct {
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	FavoriteCuisines   []string `json:"favorite_cuisines,omitempty"`
}

type Personalization struct {
	MatchesDiet     bool     `json:"matches_diet"`
	MatchedCuisines []string `json:"matched_cuisines,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// Stage is the per-invocation pipeline state. External failures degrade the run
// but still walk it forward to StageComplete.
type Stage string

const (
	StageStarted             Stage = "started"
	StageCandidatesExtracted Stage = "candidates_extracted"
	StageSearching           Stage = "searching"
	StageMatched             Stage = "matched"
	StageNoMatch             Stage = "no_match"
	StageEnriching           Stage = "enriching"
	StageComplete            Stage = "complete"
)

// Reason codes for null-match results.
const (
	ReasonNoTextDetected   = "no_text_detected"
	ReasonNoCandidateMatch = "no_candidate_match"
	ReasonEntityUnresolved = "entity_unresolved"
)

type RecognitionResult struct {
	OCRText         string           `json:"ocr_text"`
	Candidates      []TextCandidate  `json:"candidates,omitempty"`
	Match           *GeoBusiness     `json:"match"`
	Enrichment      *EnrichedProfile `json:"enrichment,omitempty"`
	Personalization *Personalization `json:"personalization,omitempty"`
	ConfidenceScore float64          `json:"confidence_score"`
	Stage           Stage            `json:"stage"`
	Reason          string           `json:"reason,omitempty"`
	Degraded        []string         `json:"degraded,omitempty"`
}

type ComparisonSide struct {
	Label      string           `json:"label"`
	Business   *GeoBusiness     `json:"business,omitempty"`
	Strategy   MatchStrategy    `json:"strategy,omitempty"`
	Option     ComparisonOption `json:"option"`
	Enrichment *EnrichedProfile `json:"enrichment,omitempty"`
}

type ComparisonResult struct {
	Success  bool           `json:"success"`
	Winner   string         `json:"winner"` // option1 | option2 | tie
	Option1  ComparisonSide `json:"option1"`
	Option2  ComparisonSide `json:"option2"`
	Budget   float64        `json:"budget"`
	Degraded []string       `json:"degraded,omitempty"`
}

// ComparisonError is returned, never thrown: the caller gets the unresolved
// labels back so the user can fix spelling or simplify input.
type ComparisonError struct {
	Success            bool     `json:"success"`
	MissingRestaurants []string `json:"missing_restaurants"`
	Error              string   `json:"error"`
}

func NewComparisonError(missing []string) *ComparisonError {
	return &ComparisonError{
		Success:            false,
		MissingRestaurants: missing,
		Error:              "Could not find: " + strings.Join(missing, ", "),
	}
}

type OCRText struct {
	FullText string   `json:"full_text"`
	Blocks   []string `json:"blocks"`
}
