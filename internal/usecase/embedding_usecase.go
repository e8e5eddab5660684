package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/repository"
	"github.com/fadilmartias/job-matcher/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// EmbeddingUsecase is the single authoritative write path for embeddings.
// The parsing/analysis pipeline calls EnsureEmbedding when a document's
// text is ready; the matching read path never triggers it.
type EmbeddingUsecase struct {
	embeddingRepo repository.EmbeddingRepositoryInterface
	provider      service.EmbeddingProviderInterface
	log           *zap.Logger
}

func NewEmbeddingUsecase(embeddingRepo repository.EmbeddingRepositoryInterface, provider service.EmbeddingProviderInterface, log *zap.Logger) *EmbeddingUsecase {
	return &EmbeddingUsecase{embeddingRepo: embeddingRepo, provider: provider, log: log}
}

// EnsureEmbedding computes and stores the embedding for a document,
// replacing any prior one. On provider failure the previous embedding, if
// any, stays intact.
func (uc *EmbeddingUsecase) EnsureEmbedding(ctx context.Context, documentID uuid.UUID, kind model.DocumentKind, text string) (*model.Embedding, error) {
	vector, err := uc.provider.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, &apperror.EmbeddingProviderError{DocumentID: documentID.String(), Err: err}
	}

	if want := uc.provider.Dimension(); len(vector) != want {
		return nil, &apperror.DimensionMismatchError{
			DocumentID: documentID.String(),
			Want:       want,
			Got:        len(vector),
		}
	}

	emb := &model.Embedding{
		DocumentID:   documentID,
		DocumentKind: kind,
		Vector:       pgvector.NewVector(vector),
		SourceText:   text,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uc.embeddingRepo.Upsert(emb); err != nil {
		return nil, err
	}

	uc.log.Info("embedding stored",
		zap.String("document_id", documentID.String()),
		zap.String("document_kind", string(kind)),
		zap.Int("dimension", len(vector)))
	return emb, nil
}

func (uc *EmbeddingUsecase) ListEmbeddings(kind model.DocumentKind, page, pageSize int) ([]model.Embedding, int64, error) {
	offset := (page - 1) * pageSize
	return uc.embeddingRepo.ListPage(kind, offset, pageSize)
}
