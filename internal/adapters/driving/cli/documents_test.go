package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

func TestDocumentsCmd_Empty(t *testing.T) {
	withIngestService(t, &fakeIngestService{})

	out, err := execute(t, "documents")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestDocumentsCmd_Lists(t *testing.T) {
	withIngestService(t, &fakeIngestService{
		docs: []domain.Document{
			{
				ID:          "doc-1",
				Name:        "manual.txt",
				ByteSize:    1234,
				Provider:    "fallback",
				Dimensions:  384,
				ProcessedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
				Chunks:      []domain.Chunk{{ID: "c-0"}, {ID: "c-1"}},
			},
		},
	})

	out, err := execute(t, "documents")

	require.NoError(t, err)
	assert.Contains(t, out, "manual.txt")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "Chunks: 2")
	assert.Contains(t, out, "fallback (384 dims)")
}

func TestDocumentsCmd_JSON(t *testing.T) {
	withIngestService(t, &fakeIngestService{
		docs: []domain.Document{
			{ID: "doc-1", Name: "manual.txt", MimeType: "text/plain"},
		},
	})

	out, err := execute(t, "documents", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "doc-1"`)
	assert.Contains(t, out, `"mimeType": "text/plain"`)

	// Reset the flag for other tests
	documentsJSON = false
}

func TestDeleteCmd_Executes(t *testing.T) {
	fake := &fakeIngestService{}
	withIngestService(t, fake)

	out, err := execute(t, "delete", "doc-42")

	require.NoError(t, err)
	assert.Equal(t, []string{"doc-42"}, fake.deleted)
	assert.Contains(t, out, "Deleted doc-42")
}

func TestDeleteCmd_RequiresID(t *testing.T) {
	withIngestService(t, &fakeIngestService{})

	_, err := execute(t, "delete")
	assert.Error(t, err)
}
