package driving

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// IngestService pushes extracted document text through the pipeline:
// chunking, embedding, durable storage.
type IngestService interface {
	// Ingest chunks and embeds the given text and stores the resulting
	// document. The text is the output of an external extractor; this
	// layer consumes plain strings only.
	//
	// Concurrent ingestion of distinct documents is safe. Concurrent
	// re-ingestion of the same document must be serialised by the
	// caller.
	Ingest(ctx context.Context, name, mimeType, text string) (*domain.Document, error)

	// List returns all stored documents with nested chunks.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document and its chunks. Idempotent.
	Delete(ctx context.Context, id string) error
}
