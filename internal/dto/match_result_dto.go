package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchResultDTO struct {
	SourceDocumentID uuid.UUID `json:"source_document_id"`
	TargetDocumentID uuid.UUID `json:"target_document_id"`
	SimilarityScore  float64   `json:"similarity_score"`
	MatchPercentage  int       `json:"match_percentage"`
	Recommendation   string    `json:"recommendation"`
	Explanation      string    `json:"explanation"`
}

type MatchListDTO struct {
	SourceDocumentID uuid.UUID        `json:"source_document_id"`
	Count            int              `json:"count"`
	Matches          []MatchResultDTO `json:"matches"`
}

// EmbeddingDTO is the ops-facing view of a stored embedding. Vectors are
// omitted; only metadata is listed.
type EmbeddingDTO struct {
	ID           uuid.UUID `json:"id"`
	DocumentID   uuid.UUID `json:"document_id"`
	DocumentKind string    `json:"document_kind"`
	Dimension    int       `json:"dimension"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
