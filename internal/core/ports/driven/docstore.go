package driven

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks durably across
// sessions. Backed by SQLite.
//
// Operations on a store that has not finished initialising return
// domain.ErrStoreNotReady, which is distinct from domain.ErrNotFound.
type DocumentStore interface {
	// Put upserts a document and its full chunk set atomically: a
	// failure leaves neither a document without its chunks nor chunks
	// without their document.
	Put(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// Get retrieves a document by ID, without chunks.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetAll returns every document ordered by ingestion time, each
	// with its chunks nested and ordered by index.
	GetAll(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document and all its chunks. Deleting an ID
	// that does not exist is not an error.
	Delete(ctx context.Context, id string) error

	// ScanAllChunks returns every stored chunk across all documents,
	// used for similarity scoring.
	ScanAllChunks(ctx context.Context) ([]domain.Chunk, error)

	// Close releases resources.
	Close() error
}
