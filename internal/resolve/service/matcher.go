package service

import (
	"context"

	"dinescan-service/internal/resolve/model"
)

// Signage text is the primary signal (the user points the camera at the
// business); GPS narrows but must not override a strong textual mismatch.
const (
	nameWeight      = 0.8
	distanceWeight  = 0.2
	acceptThreshold = 0.4
	matchSearchLim  = 5
)

// matchCandidates fuses OCR candidates with nearby businesses. Candidates are
// tried best tier first, sequentially: later candidates are strictly
// lower-confidence, so the first pair clearing the threshold wins and the rest
// are never fetched. Ties keep the first-found pair.
func (p *Pipeline) matchCandidates(ctx context.Context, cands []model.TextCandidate, coords model.Coordinates) (model.MatchResult, bool) {
	tried := make([]string, 0, len(cands))
	var best model.MatchScore
	degraded := false

	for _, cand := range cands {
		tried = append(tried, cand.Text)

		list, failed := p.search.search(ctx, cand.Text, coords, matchSearchLim, "")
		if failed {
			degraded = true
		}

		for _, biz := range list {
			score := scorePair(cand, biz, p.radius)
			if score.Combined > best.Combined {
				best = score
			}
			if score.Combined >= acceptThreshold {
				biz := biz
				return model.MatchResult{
					Business:        &biz,
					Confidence:      score.Combined,
					StrategyUsed:    model.StrategyMatched,
					CandidatesTried: tried,
				}, degraded
			}
		}
	}

	if best.Combined >= acceptThreshold {
		biz := best.Business
		return model.MatchResult{
			Business:        &biz,
			Confidence:      best.Combined,
			StrategyUsed:    model.StrategyMatched,
			CandidatesTried: tried,
		}, degraded
	}
	return model.MatchResult{
		Business:        nil,
		Confidence:      0,
		StrategyUsed:    model.StrategyNoMatch,
		CandidatesTried: tried,
	}, degraded
}

func scorePair(cand model.TextCandidate, biz model.GeoBusiness, radius float64) model.MatchScore {
	nameSim := NameSimilarity(cand.Text, biz.Name)
	distScore := 0.0
	if radius > 0 {
		distScore = 1 - biz.DistanceMeters/radius
		if distScore < 0 {
			distScore = 0
		}
	}
	return model.MatchScore{
		Candidate:      cand,
		Business:       biz,
		NameSimilarity: nameSim,
		DistanceScore:  distScore,
		Combined:       nameWeight*nameSim + distanceWeight*distScore,
	}
}
