package service

import (
	"math"

	"github.com/fadilmartias/job-matcher/internal/apperror"
)

type Recommendation string

const (
	RecommendationStrong         Recommendation = "STRONG"
	RecommendationGood           Recommendation = "GOOD"
	RecommendationWeak           Recommendation = "WEAK"
	RecommendationNotRecommended Recommendation = "NOT_RECOMMENDED"
)

// scoreTolerance absorbs floating error at the edges of the valid cosine
// range before the scorer treats the input as a bug upstream.
const scoreTolerance = 1e-6

// ScoreMatch maps a raw cosine similarity in [-1,1] to a match percentage
// and recommendation tier. Negative similarity carries no relevance signal
// and clamps to 0. Deterministic: same raw score, same output, always.
func ScoreMatch(rawSimilarity float64, documentID string) (int, Recommendation, error) {
	if rawSimilarity < -1-scoreTolerance || rawSimilarity > 1+scoreTolerance {
		return 0, "", &apperror.InvalidScoreError{DocumentID: documentID, Score: rawSimilarity}
	}

	clamped := rawSimilarity
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	scaled := clamped * 100
	percentage := int(math.Round(scaled))

	// Tiers cut on the exact scaled score, not the rounded percentage:
	// 0.799999 displays as 80% but still sits below the STRONG cut.
	var tier Recommendation
	switch {
	case scaled >= 80:
		tier = RecommendationStrong
	case scaled >= 60:
		tier = RecommendationGood
	case scaled >= 40:
		tier = RecommendationWeak
	default:
		tier = RecommendationNotRecommended
	}

	return percentage, tier, nil
}
