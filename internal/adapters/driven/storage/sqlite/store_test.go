package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docchat-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// testDocument builds a document with two embedded chunks.
func testDocument(id string) (*domain.Document, []domain.Chunk) {
	doc := &domain.Document{
		ID:             id,
		Name:           "notes.md",
		MimeType:       "text/markdown",
		ByteSize:       42,
		ContentPreview: "Some notes about vectors.",
		Provider:       "fallback",
		Dimensions:     4,
		ProcessedAt:    time.Now().UTC().Truncate(time.Second),
	}
	chunks := []domain.Chunk{
		{
			ID:          id + "-c0",
			DocumentID:  id,
			Content:     "Some notes",
			Index:       0,
			StartOffset: 0,
			EndOffset:   10,
			Embedding:   []float32{0.1, 0.2, 0.3, 0.4},
			Provider:    "fallback",
		},
		{
			ID:          id + "-c1",
			DocumentID:  id,
			Content:     "about vectors.",
			Index:       1,
			StartOffset: 10,
			EndOffset:   24,
			Embedding:   []float32{-0.5, 0, 0.5, 1},
			Provider:    "fallback",
		},
	}
	return doc, chunks
}

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.db)
	assert.FileExists(t, store.Path())
	assert.Equal(t, "docchat.db", filepath.Base(store.Path()))
}

func TestStore_PutAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, doc, chunks))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Name, got.Name)
	assert.Equal(t, doc.MimeType, got.MimeType)
	assert.Equal(t, doc.ByteSize, got.ByteSize)
	assert.Equal(t, doc.ContentPreview, got.ContentPreview)
	assert.Equal(t, doc.Provider, got.Provider)
	assert.Equal(t, doc.Dimensions, got.Dimensions)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Put_InvalidInput(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, nil, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, &domain.Document{}, nil), domain.ErrInvalidInput)
}

func TestStore_Put_ReplacesChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, doc, chunks))

	// Re-ingest with a single new chunk
	newChunks := []domain.Chunk{
		{
			ID:         "doc-1-v2",
			DocumentID: "doc-1",
			Content:    "rewritten",
			Index:      0,
			EndOffset:  9,
			Embedding:  []float32{1, 0, 0, 0},
			Provider:   "fallback",
		},
	}
	require.NoError(t, store.Put(ctx, doc, newChunks))

	all, err := store.ScanAllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "doc-1-v2", all[0].ID)
	assert.Equal(t, "rewritten", all[0].Content)
}

func TestStore_GetAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc1, chunks1 := testDocument("doc-1")
	doc1.ProcessedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	doc2, chunks2 := testDocument("doc-2")
	doc2.Name = "later.txt"
	doc2.ProcessedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of order; results must be ordered by ingestion time
	require.NoError(t, store.Put(ctx, doc2, chunks2))
	require.NoError(t, store.Put(ctx, doc1, chunks1))

	docs, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "doc-2", docs[1].ID)

	// Chunks are nested and ordered by index
	require.Len(t, docs[0].Chunks, 2)
	assert.Equal(t, 0, docs[0].Chunks[0].Index)
	assert.Equal(t, 1, docs[0].Chunks[1].Index)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, docs[0].Chunks[0].Embedding)
}

func TestStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc, chunks := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, doc, chunks))

	require.NoError(t, store.Delete(ctx, "doc-1"))

	_, err := store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Chunks cascade with the document
	all, err := store.ScanAllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Delete_Idempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
}

func TestStore_ScanAllChunks_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	chunks, err := store.ScanAllChunks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStore_Persistence(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docchat-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)

	doc, chunks := testDocument("doc-1")
	require.NoError(t, store.Put(ctx, doc, chunks))
	require.NoError(t, store.Close())

	// Reopen and verify the data survived
	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "notes.md", got.Name)

	all, err := store2.ScanAllChunks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []float32{-0.5, 0, 0.5, 1}, all[1].Embedding)
}

func TestStore_NotReady(t *testing.T) {
	var store *Store
	ctx := context.Background()

	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrStoreNotReady)
	assert.ErrorIs(t, store.Delete(ctx, "x"), domain.ErrStoreNotReady)
	_, err = store.ScanAllChunks(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreNotReady)
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.25, 3.14159}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
