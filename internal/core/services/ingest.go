package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docchat-labs/docchat-cli/internal/chunker"
	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService pushes document text through chunking, embedding, and
// durable storage.
type IngestService struct {
	store    driven.DocumentStore
	provider driven.EmbeddingProvider
	chunker  *chunker.Chunker
}

// NewIngestService creates a new ingestion service. A nil chunker uses
// the default chunk size and overlap.
func NewIngestService(
	store driven.DocumentStore,
	provider driven.EmbeddingProvider,
	ck *chunker.Chunker,
) *IngestService {
	if ck == nil {
		ck = chunker.New()
	}
	return &IngestService{
		store:    store,
		provider: provider,
		chunker:  ck,
	}
}

// Ingest chunks and embeds the given text, then stores the document
// with its chunk set in one write. A chunk whose embedding fails is
// skipped; the document records only the chunks that embedded
// successfully.
func (s *IngestService) Ingest(ctx context.Context, name, mimeType, text string) (*domain.Document, error) {
	if name == "" || strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Document Ingestion")
	logger.Debug("Ingesting %q (%d bytes)", name, len(text))

	// Warm the embedding path up front so every chunk goes through the
	// same provider state. A failed probe is not fatal: embedding
	// degrades to the fallback.
	if err := s.provider.Init(ctx); err != nil {
		logger.Warn("Embedding init failed, continuing degraded: %v", err)
	}

	pieces := s.chunker.Split(text)
	logger.Debug("Split into %d chunks (provider: %s, %d dims)",
		len(pieces), s.provider.Name(), s.provider.Dimensions())

	doc := &domain.Document{
		ID:             uuid.NewString(),
		Name:           name,
		MimeType:       mimeType,
		ByteSize:       int64(len(text)),
		ContentPreview: domain.Preview(text),
		Provider:       s.provider.Name(),
		Dimensions:     s.provider.Dimensions(),
		ProcessedAt:    time.Now().UTC(),
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	skipped := 0
	for _, piece := range pieces {
		vec, path, err := s.provider.Embed(ctx, piece.Text)
		if err != nil {
			// Skip this chunk, keep the document
			logger.Warn("Embedding chunk %d of %q failed, skipping: %v", piece.Index, name, err)
			skipped++
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:          uuid.NewString(),
			DocumentID:  doc.ID,
			Content:     piece.Text,
			Index:       piece.Index,
			StartOffset: piece.Start,
			EndOffset:   piece.End,
			Embedding:   vec,
			// Tag with the path that actually produced the vector; a
			// per-call degradation must not label it native.
			Provider: path,
		})
	}
	if skipped > 0 {
		logger.Warn("Document %q: %d of %d chunks skipped", name, skipped, len(pieces))
	}

	if err := s.store.Put(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("storing document: %w", err)
	}

	logger.Info("Ingested %q: %d chunks stored", name, len(chunks))
	doc.Chunks = chunks
	return doc, nil
}

// List returns all stored documents with nested chunks, ordered by
// ingestion time.
func (s *IngestService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document and its chunks. Deleting an absent ID is
// not an error.
func (s *IngestService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	logger.Debug("Deleted document %s", id)
	return nil
}
