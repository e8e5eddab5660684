package repository

import (
	"errors"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingRepositoryInterface interface {
	Upsert(emb *model.Embedding) error
	FindByDocument(documentID uuid.UUID, kind model.DocumentKind) (*model.Embedding, error)
	ListByKind(kind model.DocumentKind, excludeID *uuid.UUID) ([]model.Embedding, error)
	ListPage(kind model.DocumentKind, offset, limit int) ([]model.Embedding, int64, error)
}

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db}
}

// Upsert replaces the row for (document_id, document_kind) wholesale.
// Latest write wins; there is exactly one embedding per document.
func (r *EmbeddingRepository) Upsert(emb *model.Embedding) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}, {Name: "document_kind"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"vector", "source_text", "updated_at",
		}),
	}).Create(emb).Error
}

func (r *EmbeddingRepository) FindByDocument(documentID uuid.UUID, kind model.DocumentKind) (*model.Embedding, error) {
	var emb model.Embedding
	err := r.db.First(&emb, "document_id = ? AND document_kind = ?", documentID, kind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.SourceEmbeddingNotFoundError{
			DocumentID:   documentID.String(),
			DocumentKind: string(kind),
		}
	}
	if err != nil {
		return nil, err
	}
	return &emb, nil
}

// ListByKind returns the corpus for a similarity scan. Each call re-queries
// the table, so the result reflects store state at call time.
func (r *EmbeddingRepository) ListByKind(kind model.DocumentKind, excludeID *uuid.UUID) ([]model.Embedding, error) {
	var embs []model.Embedding
	q := r.db.Where("document_kind = ?", kind)
	if excludeID != nil {
		q = q.Where("document_id <> ?", *excludeID)
	}
	err := q.Order("document_id ASC").Find(&embs).Error
	return embs, err
}

func (r *EmbeddingRepository) ListPage(kind model.DocumentKind, offset, limit int) ([]model.Embedding, int64, error) {
	var embs []model.Embedding
	var total int64

	q := r.db.Model(&model.Embedding{})
	if kind != "" {
		q = q.Where("document_kind = ?", kind)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&embs).Error
	return embs, total, err
}
