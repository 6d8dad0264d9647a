package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

func TestDocumentStore_PutGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Name: "readme.txt", ProcessedAt: time.Now()}
	chunks := []domain.Chunk{
		{ID: "c-1", DocumentID: "doc-1", Content: "hello", Index: 1},
		{ID: "c-0", DocumentID: "doc-1", Content: "world", Index: 0},
	}
	require.NoError(t, store.Put(ctx, doc, chunks))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "readme.txt", got.Name)

	all, err := store.ScanAllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by index regardless of insertion order
	assert.Equal(t, "c-0", all[0].ID)
	assert.Equal(t, "c-1", all[1].ID)
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store := NewDocumentStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Put_InvalidInput(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	assert.ErrorIs(t, store.Put(ctx, nil, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, &domain.Document{}, nil), domain.ErrInvalidInput)
}

func TestDocumentStore_GetAll_Ordering(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(ctx, &domain.Document{ID: "b", ProcessedAt: late}, nil))
	require.NoError(t, store.Put(ctx, &domain.Document{ID: "a", ProcessedAt: early}, []domain.Chunk{
		{ID: "a-0", DocumentID: "a", Index: 0},
	}))

	docs, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.Len(t, docs[0].Chunks, 1)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &domain.Document{ID: "doc-1"}, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1"},
	}))
	require.NoError(t, store.Delete(ctx, "doc-1"))
	require.NoError(t, store.Delete(ctx, "doc-1")) // idempotent

	_, err := store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := store.ScanAllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDocumentStore_Put_ReplacesChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1"}
	require.NoError(t, store.Put(ctx, doc, []domain.Chunk{
		{ID: "old-0", DocumentID: "doc-1", Index: 0},
		{ID: "old-1", DocumentID: "doc-1", Index: 1},
	}))
	require.NoError(t, store.Put(ctx, doc, []domain.Chunk{
		{ID: "new-0", DocumentID: "doc-1", Index: 0},
	}))

	all, err := store.ScanAllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "new-0", all[0].ID)
}
