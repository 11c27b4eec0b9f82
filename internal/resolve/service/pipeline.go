package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"dinescan-service/internal/ocr"
	"dinescan-service/internal/places"
	"dinescan-service/internal/resolve/model"
)

// ErrInvalidInput is the only condition surfaced as a hard error from the two
// entry points. Everything else is absorbed into the result's confidence and
// null fields.
var ErrInvalidInput = errors.New("invalid input")

// Pipeline sequences the recognition and comparison paths. All collaborators
// are injected; a Pipeline holds no mutable state, so concurrent invocations
// share nothing.
type Pipeline struct {
	ocr           ocr.Service
	dir           places.Directory
	search        geoSearch
	radius        float64
	defaultBudget float64
	logger        zerolog.Logger
}

func NewPipeline(ocrSvc ocr.Service, dir places.Directory, radiusM, defaultBudget float64, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		ocr:           ocrSvc,
		dir:           dir,
		search:        geoSearch{client: dir, logger: logger},
		radius:        radiusM,
		defaultBudget: defaultBudget,
		logger:        logger,
	}
}

// Recognize is the camera path: OCR → candidate extraction → geo matching →
// enrichment → personalization. External failures degrade the result; only an
// empty image or a missing GPS fix is a hard error.
func (p *Pipeline) Recognize(ctx context.Context, image []byte, coords model.Coordinates, profile *model.UserProfile) (*model.RecognitionResult, error) {
	if len(image) == 0 || coords.IsZero() {
		return nil, ErrInvalidInput
	}

	res := &model.RecognitionResult{Stage: model.StageStarted}

	text, err := p.ocr.ExtractText(ctx, image)
	if err != nil {
		p.logger.Warn().Err(err).Msg("ocr degraded")
		res.Degraded = append(res.Degraded, "ocr")
	}
	res.OCRText = text.FullText

	blocks := text.Blocks
	if len(blocks) == 0 && text.FullText != "" {
		blocks = strings.Split(text.FullText, "\n")
	}

	res.Candidates = ExtractCandidates(blocks)
	res.Stage = model.StageCandidatesExtracted
	if len(res.Candidates) == 0 {
		res.Stage = model.StageComplete
		res.Reason = model.ReasonNoTextDetected
		return res, nil
	}

	res.Stage = model.StageSearching
	match, degraded := p.matchCandidates(ctx, res.Candidates, coords)
	if degraded {
		res.Degraded = append(res.Degraded, "search")
	}
	if match.Business == nil {
		res.Stage = model.StageComplete
		res.Reason = model.ReasonNoCandidateMatch
		return res, nil
	}

	res.Match = match.Business
	res.ConfidenceScore = match.Confidence
	res.Stage = model.StageEnriching

	enr, enrDegraded := p.enrich(ctx, *match.Business)
	res.Enrichment = enr
	res.Degraded = append(res.Degraded, enrDegraded...)

	if profile != nil {
		res.Personalization = personalize(profile, enr, match.Business)
	}

	res.Stage = model.StageComplete
	return res, nil
}

type sideOutcome struct {
	side     model.ComparisonSide
	resolved bool
	degraded []string
}

// Compare resolves both options concurrently, enriches and scores each side,
// and picks the winner. An unresolved side is reported back by its original
// label, never raised.
func (p *Pipeline) Compare(ctx context.Context, opt1, opt2 model.OptionInput, budget float64, coords model.Coordinates) (*model.ComparisonResult, *model.ComparisonError, error) {
	if opt1.IsEmpty() || opt2.IsEmpty() {
		return nil, nil, ErrInvalidInput
	}

	parsed := [2]parsedOption{toParsed(opt1), toParsed(opt2)}
	if budget <= 0 {
		budget = deriveBudget(parsed[0], parsed[1], p.defaultBudget)
	}

	var outcomes [2]sideOutcome
	var wg sync.WaitGroup
	for i := range parsed {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = p.compareSide(ctx, parsed[i], coords, budget)
		}(i)
	}
	wg.Wait()

	var missing []string
	for i := range outcomes {
		if !outcomes[i].resolved {
			missing = append(missing, parsed[i].Original)
		}
	}
	if len(missing) > 0 {
		return nil, model.NewComparisonError(missing), nil
	}

	res := &model.ComparisonResult{
		Success: true,
		Option1: outcomes[0].side,
		Option2: outcomes[1].side,
		Budget:  budget,
	}
	res.Degraded = append(res.Degraded, outcomes[0].degraded...)
	res.Degraded = append(res.Degraded, outcomes[1].degraded...)

	s1, s2 := res.Option1.Option.ValueScore, res.Option2.Option.ValueScore
	switch {
	case s1 > s2:
		res.Winner = "option1"
	case s2 > s1:
		res.Winner = "option2"
	default:
		res.Winner = "tie"
	}
	return res, nil, nil
}

func (p *Pipeline) compareSide(ctx context.Context, opt parsedOption, coords model.Coordinates, budget float64) sideOutcome {
	out := sideOutcome{side: model.ComparisonSide{Label: opt.Original}}

	biz, strategy, degraded := p.resolveFreeText(ctx, opt, coords)
	if degraded {
		out.degraded = append(out.degraded, "search")
	}
	if biz == nil {
		return out
	}
	out.resolved = true
	out.side.Business = biz
	out.side.Strategy = strategy

	enr, enrDegraded := p.enrich(ctx, *biz)
	out.side.Enrichment = enr
	out.degraded = append(out.degraded, enrDegraded...)

	cost := opt.Cost
	if !opt.HasCost {
		cost = estimateCost(biz.PriceLevel, opt.Dish)
	}
	calories := opt.Calories
	if calories <= 0 {
		calories = estimateCalories(opt.Dish)
	}
	quantity := opt.Quantity
	if quantity == "" {
		quantity = estimateQuantity(opt.Dish)
	}

	out.side.Option = model.ComparisonOption{
		RestaurantName:    biz.Name,
		DishName:          opt.Dish,
		PriceLevel:        biz.PriceLevel,
		EstimatedCost:     cost,
		EstimatedCalories: calories,
		EstimatedQuantity: quantity,
		ValueScore:        ValueScore(cost, calories, quantity, budget),
	}
	return out
}

// toParsed converts either input variant into the resolver's working form.
// Structured options skip the free-text parse entirely.
func toParsed(opt model.OptionInput) parsedOption {
	if opt.Kind == model.KindStructured && opt.Structured != nil {
		st := opt.Structured
		return parsedOption{
			Restaurant: st.Restaurant,
			Dish:       st.Dish,
			Cost:       st.Cost,
			HasCost:    st.Cost > 0,
			Calories:   st.Calories,
			Quantity:   st.Quantity,
			Original:   st.Restaurant,
		}
	}
	return parseFreeText(opt.Raw)
}

// deriveBudget uses the larger typed cost when the caller gave no budget.
func deriveBudget(a, b parsedOption, def float64) float64 {
	budget := 0.0
	if a.HasCost && a.Cost > budget {
		budget = a.Cost
	}
	if b.HasCost && b.Cost > budget {
		budget = b.Cost
	}
	if budget <= 0 {
		budget = def
	}
	return budget
}

// personalize is a rule-based tagging of the enriched profile against the
// user's stated preferences.
func personalize(profile *model.UserProfile, enr *model.EnrichedProfile, biz *model.GeoBusiness) *model.Personalization {
	pers := &model.Personalization{}

	labels := make(map[string]struct{})
	if enr != nil {
		for _, l := range enr.DietaryLabels {
			labels[strings.ToLower(l)] = struct{}{}
		}
	}
	dietHits := 0
	for _, pref := range profile.DietaryPreferences {
		if _, ok := labels[strings.ToLower(pref)]; ok {
			dietHits++
			pers.Tags = append(pers.Tags, "matches your diet: "+strings.ToLower(pref))
		}
	}
	pers.MatchesDiet = len(profile.DietaryPreferences) > 0 && dietHits == len(profile.DietaryPreferences)

	if biz != nil {
		for _, fav := range profile.FavoriteCuisines {
			for _, cat := range biz.Categories {
				if strings.EqualFold(fav, cat) {
					pers.MatchedCuisines = append(pers.MatchedCuisines, cat)
					pers.Tags = append(pers.Tags, "favorite cuisine: "+strings.ToLower(cat))
					break
				}
			}
		}
	}
	return pers
}
