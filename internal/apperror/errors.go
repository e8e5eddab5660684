package apperror

import "fmt"

// SourceEmbeddingNotFoundError means the document referenced by a match
// request has not been analyzed yet, so no embedding exists for it.
type SourceEmbeddingNotFoundError struct {
	DocumentID   string
	DocumentKind string
}

func (e *SourceEmbeddingNotFoundError) Error() string {
	return fmt.Sprintf("no embedding for %s document %s (not analyzed yet)", e.DocumentKind, e.DocumentID)
}

// EmbeddingProviderError wraps a failure of the external embedding
// capability (timeouts included). Callers must not treat it as an empty
// vector.
type EmbeddingProviderError struct {
	DocumentID string
	Err        error
}

func (e *EmbeddingProviderError) Error() string {
	return fmt.Sprintf("embedding provider failed for document %s: %v", e.DocumentID, e.Err)
}

func (e *EmbeddingProviderError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError signals corpus/provider dimensionality drift.
// Fatal for the affected operation; retrying cannot fix it.
type DimensionMismatchError struct {
	DocumentID string
	Want       int
	Got        int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch for document %s: want %d, got %d", e.DocumentID, e.Want, e.Got)
}

// InvalidScoreError means a raw similarity outside [-1,1] reached the
// scorer, which indicates a bug upstream of it.
type InvalidScoreError struct {
	DocumentID string
	Score      float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("raw similarity %v out of range [-1,1] for document %s", e.Score, e.DocumentID)
}
