package usecase

import (
	"testing"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbeddingRepo struct {
	embeddings []model.Embedding
}

func (f *fakeEmbeddingRepo) Upsert(emb *model.Embedding) error {
	for i, existing := range f.embeddings {
		if existing.DocumentID == emb.DocumentID && existing.DocumentKind == emb.DocumentKind {
			f.embeddings[i] = *emb
			return nil
		}
	}
	f.embeddings = append(f.embeddings, *emb)
	return nil
}

func (f *fakeEmbeddingRepo) FindByDocument(documentID uuid.UUID, kind model.DocumentKind) (*model.Embedding, error) {
	for _, emb := range f.embeddings {
		if emb.DocumentID == documentID && emb.DocumentKind == kind {
			found := emb
			return &found, nil
		}
	}
	return nil, &apperror.SourceEmbeddingNotFoundError{DocumentID: documentID.String(), DocumentKind: string(kind)}
}

func (f *fakeEmbeddingRepo) ListByKind(kind model.DocumentKind, excludeID *uuid.UUID) ([]model.Embedding, error) {
	var out []model.Embedding
	for _, emb := range f.embeddings {
		if emb.DocumentKind != kind {
			continue
		}
		if excludeID != nil && emb.DocumentID == *excludeID {
			continue
		}
		out = append(out, emb)
	}
	return out, nil
}

func (f *fakeEmbeddingRepo) ListPage(kind model.DocumentKind, offset, limit int) ([]model.Embedding, int64, error) {
	embs, _ := f.ListByKind(kind, nil)
	total := int64(len(embs))
	if offset >= len(embs) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(embs) {
		end = len(embs)
	}
	return embs[offset:end], total, nil
}

type countingSimilarity struct {
	inner service.SimilaritySearchInterface
	calls int
}

func (c *countingSimilarity) Search(queryVector []float32, corpus []model.Embedding, topK int, minSimilarity *float64) ([]service.ScoredEmbedding, error) {
	c.calls++
	return c.inner.Search(queryVector, corpus, topK, minSimilarity)
}

type plainExplainer struct{}

func (p *plainExplainer) Explain(sourceText, targetText string, matchPercentage int, tier service.Recommendation) string {
	return "ok"
}

var (
	jobID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	c1ID  = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	c2ID  = uuid.MustParse("00000000-0000-0000-0000-0000000000c2")
	c3ID  = uuid.MustParse("00000000-0000-0000-0000-0000000000c3")
)

func seedScenario() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{embeddings: []model.Embedding{
		{DocumentID: jobID, DocumentKind: model.KindJob, Vector: pgvector.NewVector([]float32{1, 0, 0}), SourceText: "golang backend job"},
		{DocumentID: c1ID, DocumentKind: model.KindCandidate, Vector: pgvector.NewVector([]float32{1, 0, 0}), SourceText: "golang backend cv"},
		{DocumentID: c2ID, DocumentKind: model.KindCandidate, Vector: pgvector.NewVector([]float32{0, 1, 0}), SourceText: "designer cv"},
		{DocumentID: c3ID, DocumentKind: model.KindCandidate, Vector: pgvector.NewVector([]float32{-1, 0, 0}), SourceText: "something else"},
	}}
}

func newMatchingUsecase(repo *fakeEmbeddingRepo, similarity service.SimilaritySearchInterface) *MatchingUsecase {
	return NewMatchingUsecase(repo, similarity, &plainExplainer{}, 10, zap.NewNop())
}

func TestFindMatchesScenarioOrdering(t *testing.T) {
	repo := seedScenario()
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	result, err := uc.FindMatchesForDocument(jobID, model.KindJob, 3, nil)
	require.NoError(t, err)
	require.Equal(t, 3, result.Count)

	// C1 identical: strictly first at 100% STRONG.
	assert.Equal(t, c1ID, result.Matches[0].TargetDocumentID)
	assert.Equal(t, 100, result.Matches[0].MatchPercentage)
	assert.Equal(t, string(service.RecommendationStrong), result.Matches[0].Recommendation)
	assert.Greater(t, result.Matches[0].SimilarityScore, result.Matches[1].SimilarityScore)

	// C2 orthogonal, C3 opposite: both 0% NOT_RECOMMENDED, C2 before C3
	// because raw cosine still orders them.
	assert.Equal(t, c2ID, result.Matches[1].TargetDocumentID)
	assert.Equal(t, c3ID, result.Matches[2].TargetDocumentID)
	for _, m := range result.Matches[1:] {
		assert.Equal(t, 0, m.MatchPercentage)
		assert.Equal(t, string(service.RecommendationNotRecommended), m.Recommendation)
	}
}

func TestFindMatchesReturnsAtMostTopK(t *testing.T) {
	repo := seedScenario()
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	result, err := uc.FindMatchesForDocument(jobID, model.KindJob, 2, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Count, 2)

	for i := 1; i < len(result.Matches); i++ {
		assert.GreaterOrEqual(t, result.Matches[i-1].SimilarityScore, result.Matches[i].SimilarityScore)
	}
}

func TestFindMatchesDefaultsTopK(t *testing.T) {
	repo := seedScenario()
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	result, err := uc.FindMatchesForDocument(jobID, model.KindJob, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
}

func TestFindMatchesMissingSourceSkipsSimilarity(t *testing.T) {
	repo := seedScenario()
	counting := &countingSimilarity{inner: service.NewSimilarityService(zap.NewNop())}
	uc := newMatchingUsecase(repo, counting)

	unknown := uuid.MustParse("00000000-0000-0000-0000-00000000dead")
	_, err := uc.FindMatchesForDocument(unknown, model.KindJob, 5, nil)
	require.Error(t, err)

	var notFound *apperror.SourceEmbeddingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, unknown.String(), notFound.DocumentID)
	assert.Zero(t, counting.calls, "no similarity computation for unanalyzed documents")
}

func TestFindMatchesSymmetricDirection(t *testing.T) {
	repo := seedScenario()
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	// Candidate→jobs scans the job corpus.
	result, err := uc.FindMatchesForDocument(c1ID, model.KindCandidate, 10, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, jobID, result.Matches[0].TargetDocumentID)
	assert.Equal(t, 100, result.Matches[0].MatchPercentage)
}

func TestFindMatchesAppliesMinSimilarity(t *testing.T) {
	repo := seedScenario()
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	min := 0.5
	result, err := uc.FindMatchesForDocument(jobID, model.KindJob, 10, &min)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, c1ID, result.Matches[0].TargetDocumentID)
}

func TestFindMatchesFailsOnCorpusDimensionDrift(t *testing.T) {
	repo := seedScenario()
	repo.embeddings = append(repo.embeddings, model.Embedding{
		DocumentID:   uuid.MustParse("00000000-0000-0000-0000-0000000000c4"),
		DocumentKind: model.KindCandidate,
		Vector:       pgvector.NewVector([]float32{1, 0}),
	})
	uc := newMatchingUsecase(repo, service.NewSimilarityService(zap.NewNop()))

	_, err := uc.FindMatchesForDocument(jobID, model.KindJob, 10, nil)
	require.Error(t, err)

	var mismatch *apperror.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
}
