package service

import (
	"testing"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMatchTierBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		wantPct  int
		wantTier Recommendation
	}{
		{"exact strong cut", 0.80, 80, RecommendationStrong},
		{"just below strong cut", 0.799999, 80, RecommendationGood},
		{"exact good cut", 0.60, 60, RecommendationGood},
		{"exact weak cut", 0.40, 40, RecommendationWeak},
		{"just below weak cut", 0.3999, 40, RecommendationNotRecommended},
		{"identical vectors", 1.0, 100, RecommendationStrong},
		{"orthogonal", 0.0, 0, RecommendationNotRecommended},
		{"opposite clamps to zero", -1.0, 0, RecommendationNotRecommended},
		{"slightly negative clamps", -0.2, 0, RecommendationNotRecommended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, tier, err := ScoreMatch(tt.raw, "doc-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, pct)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestScoreMatchMonotonicity(t *testing.T) {
	prev := -1
	for raw := -1.0; raw <= 1.0; raw += 0.001 {
		pct, _, err := ScoreMatch(raw, "doc-1")
		require.NoError(t, err)
		require.GreaterOrEqual(t, pct, prev, "percentage must be non-decreasing at raw=%v", raw)
		prev = pct
	}
}

func TestScoreMatchRejectsOutOfRange(t *testing.T) {
	for _, raw := range []float64{1.01, -1.01, 2, -5} {
		_, _, err := ScoreMatch(raw, "doc-7")
		require.Error(t, err)

		var invalid *apperror.InvalidScoreError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "doc-7", invalid.DocumentID)
	}
}

func TestScoreMatchToleratesFloatingError(t *testing.T) {
	pct, tier, err := ScoreMatch(1.0000000001, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 100, pct)
	assert.Equal(t, RecommendationStrong, tier)

	pct, _, err = ScoreMatch(-1.0000000001, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}
