package service

import (
	"testing"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func makeEmbedding(t *testing.T, id string, vec []float32) model.Embedding {
	t.Helper()
	return model.Embedding{
		DocumentID:   uuid.MustParse(id),
		DocumentKind: model.KindCandidate,
		Vector:       pgvector.NewVector(vec),
	}
}

const (
	idA = "00000000-0000-0000-0000-00000000000a"
	idB = "00000000-0000-0000-0000-00000000000b"
	idC = "00000000-0000-0000-0000-00000000000c"
	idD = "00000000-0000-0000-0000-00000000000d"
)

func TestSearchIdenticalVectorScoresOne(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{makeEmbedding(t, idA, []float32{0.3, 0.5, 0.2})}

	hits, err := svc.Search([]float32{0.3, 0.5, 0.2}, corpus, 10, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestSearchOrdersDescending(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{
		makeEmbedding(t, idA, []float32{0, 1, 0}),
		makeEmbedding(t, idB, []float32{1, 0, 0}),
		makeEmbedding(t, idC, []float32{1, 1, 0}),
	}

	hits, err := svc.Search([]float32{1, 0, 0}, corpus, 10, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
	assert.Equal(t, idB, hits[0].Embedding.DocumentID.String())
}

func TestSearchBreaksTiesByDocumentID(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	// Same vector twice, so identical scores. Order must be by id.
	corpus := []model.Embedding{
		makeEmbedding(t, idC, []float32{1, 0, 0}),
		makeEmbedding(t, idA, []float32{1, 0, 0}),
		makeEmbedding(t, idB, []float32{1, 0, 0}),
	}

	hits, err := svc.Search([]float32{1, 0, 0}, corpus, 10, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, idA, hits[0].Embedding.DocumentID.String())
	assert.Equal(t, idB, hits[1].Embedding.DocumentID.String())
	assert.Equal(t, idC, hits[2].Embedding.DocumentID.String())
}

func TestSearchTruncatesToTopK(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{
		makeEmbedding(t, idA, []float32{1, 0, 0}),
		makeEmbedding(t, idB, []float32{1, 1, 0}),
		makeEmbedding(t, idC, []float32{0, 1, 0}),
		makeEmbedding(t, idD, []float32{1, 0, 1}),
	}

	hits, err := svc.Search([]float32{1, 0, 0}, corpus, 2, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.Equal(t, idA, hits[0].Embedding.DocumentID.String())
}

func TestSearchAppliesMinSimilarity(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{
		makeEmbedding(t, idA, []float32{1, 0, 0}),
		makeEmbedding(t, idB, []float32{0, 1, 0}),
	}

	min := 0.5
	hits, err := svc.Search([]float32{1, 0, 0}, corpus, 10, &min)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, idA, hits[0].Embedding.DocumentID.String())
}

func TestSearchSkipsZeroVectors(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{
		makeEmbedding(t, idA, []float32{0, 0, 0}),
		makeEmbedding(t, idB, []float32{1, 0, 0}),
	}

	hits, err := svc.Search([]float32{1, 0, 0}, corpus, 10, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, idB, hits[0].Embedding.DocumentID.String())
}

func TestSearchFailsOnDimensionMismatch(t *testing.T) {
	svc := NewSimilarityService(zap.NewNop())
	corpus := []model.Embedding{
		makeEmbedding(t, idA, []float32{1, 0, 0}),
		makeEmbedding(t, idB, []float32{1, 0}),
	}

	_, err := svc.Search([]float32{1, 0, 0}, corpus, 10, nil)
	require.Error(t, err)

	var mismatch *apperror.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, idB, mismatch.DocumentID)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)
}
