package service

import (
	"math"
	"sort"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/model"
	"go.uber.org/zap"
)

type ScoredEmbedding struct {
	Embedding model.Embedding
	Score     float64
}

type SimilaritySearchInterface interface {
	Search(queryVector []float32, corpus []model.Embedding, topK int, minSimilarity *float64) ([]ScoredEmbedding, error)
}

// SimilarityService scores a query vector against a full corpus with exact
// cosine similarity. Exactness over scale: corpora are assumed to fit in
// memory, and an ANN index can replace this behind the same contract if
// they stop fitting.
type SimilarityService struct {
	log *zap.Logger
}

func NewSimilarityService(log *zap.Logger) *SimilarityService {
	return &SimilarityService{log: log}
}

func (s *SimilarityService) Search(queryVector []float32, corpus []model.Embedding, topK int, minSimilarity *float64) ([]ScoredEmbedding, error) {
	queryNorm := vectorNorm(queryVector)
	if queryNorm == 0 {
		s.log.Warn("query vector is zero, no results possible")
		return nil, nil
	}

	scored := make([]ScoredEmbedding, 0, len(corpus))
	for _, emb := range corpus {
		vec := emb.Vector.Slice()
		if len(vec) != len(queryVector) {
			return nil, &apperror.DimensionMismatchError{
				DocumentID: emb.DocumentID.String(),
				Want:       len(queryVector),
				Got:        len(vec),
			}
		}

		norm := vectorNorm(vec)
		if norm == 0 {
			// Degenerate embedding. Excluded from this query, not a failure.
			s.log.Warn("zero vector in corpus, skipping",
				zap.String("document_id", emb.DocumentID.String()),
				zap.String("document_kind", string(emb.DocumentKind)))
			continue
		}

		score := dotProduct(queryVector, vec) / (queryNorm * norm)
		if minSimilarity != nil && score < *minSimilarity {
			continue
		}
		scored = append(scored, ScoredEmbedding{Embedding: emb, Score: score})
	}

	// Descending by score, ties broken by ascending document id so repeated
	// searches over the same corpus return the same order.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Embedding.DocumentID.String() < scored[j].Embedding.DocumentID.String()
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
