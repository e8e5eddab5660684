package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentKind string

const (
	KindJob       DocumentKind = "job"
	KindCandidate DocumentKind = "candidate"
)

func (k DocumentKind) Valid() bool {
	return k == KindJob || k == KindCandidate
}

// Opposite returns the corpus kind scanned for this kind's match requests.
func (k DocumentKind) Opposite() DocumentKind {
	if k == KindJob {
		return KindCandidate
	}
	return KindJob
}

type Embedding struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_document;not null" json:"document_id"`
	DocumentKind DocumentKind    `gorm:"type:varchar(20);uniqueIndex:idx_document;not null" json:"document_kind"`
	Vector       pgvector.Vector `gorm:"type:vector(768)" json:"-"` // pakai pgvector
	SourceText   string          `gorm:"type:text" json:"source_text"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (e *Embedding) TableName() string {
	return "embeddings"
}
