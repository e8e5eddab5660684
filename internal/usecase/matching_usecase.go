package usecase

import (
	"github.com/fadilmartias/job-matcher/internal/dto"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/repository"
	"github.com/fadilmartias/job-matcher/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchingUsecase coordinates a match request end to end: resolve the
// source embedding, scan the opposite corpus, score, explain the top hits.
// Read-only; repeated calls over an unchanged store return identical
// ordered output.
type MatchingUsecase struct {
	embeddingRepo repository.EmbeddingRepositoryInterface
	similarity    service.SimilaritySearchInterface
	explainer     service.ExplanationInterface
	defaultTopK   int
	log           *zap.Logger
}

func NewMatchingUsecase(embeddingRepo repository.EmbeddingRepositoryInterface, similarity service.SimilaritySearchInterface, explainer service.ExplanationInterface, defaultTopK int, log *zap.Logger) *MatchingUsecase {
	return &MatchingUsecase{
		embeddingRepo: embeddingRepo,
		similarity:    similarity,
		explainer:     explainer,
		defaultTopK:   defaultTopK,
		log:           log,
	}
}

func (uc *MatchingUsecase) FindMatchesForDocument(documentID uuid.UUID, kind model.DocumentKind, topK int, minSimilarity *float64) (*dto.MatchListDTO, error) {
	if topK <= 0 {
		topK = uc.defaultTopK
	}

	source, err := uc.embeddingRepo.FindByDocument(documentID, kind)
	if err != nil {
		return nil, err
	}

	corpus, err := uc.embeddingRepo.ListByKind(kind.Opposite(), &documentID)
	if err != nil {
		return nil, err
	}

	hits, err := uc.similarity.Search(source.Vector.Slice(), corpus, topK, minSimilarity)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.MatchResultDTO, 0, len(hits))
	for _, hit := range hits {
		percentage, tier, err := service.ScoreMatch(hit.Score, hit.Embedding.DocumentID.String())
		if err != nil {
			return nil, err
		}

		// Explanations only for the returned topK, never the full corpus.
		explanation := uc.explainer.Explain(source.SourceText, hit.Embedding.SourceText, percentage, tier)

		matches = append(matches, dto.MatchResultDTO{
			SourceDocumentID: documentID,
			TargetDocumentID: hit.Embedding.DocumentID,
			SimilarityScore:  hit.Score,
			MatchPercentage:  percentage,
			Recommendation:   string(tier),
			Explanation:      explanation,
		})
	}

	uc.log.Debug("match request served",
		zap.String("document_id", documentID.String()),
		zap.String("document_kind", string(kind)),
		zap.Int("corpus_size", len(corpus)),
		zap.Int("returned", len(matches)))

	return &dto.MatchListDTO{
		SourceDocumentID: documentID,
		Count:            len(matches),
		Matches:          matches,
	}, nil
}
