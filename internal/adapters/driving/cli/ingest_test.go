package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file...]", ingestCmd.Use)
}

func TestIngestCmd_Executes(t *testing.T) {
	fake := &fakeIngestService{}
	withIngestService(t, fake)

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("Some markdown content."), 0600))

	out, err := execute(t, "ingest", path)

	require.NoError(t, err)
	assert.Equal(t, []string{"notes.md"}, fake.ingested)
	assert.Contains(t, out, "Ingested notes.md: 1 chunks")
	assert.Contains(t, out, "doc-notes.md")
}

func TestIngestCmd_MultipleFiles(t *testing.T) {
	fake := &fakeIngestService{}
	withIngestService(t, fake)

	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0600))
	}

	_, err := execute(t, "ingest", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))

	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, fake.ingested)
}

func TestIngestCmd_MissingFile(t *testing.T) {
	withIngestService(t, &fakeIngestService{})

	_, err := execute(t, "ingest", "/no/such/file.txt")
	assert.Error(t, err)
}

func TestIngestCmd_RequiresService(t *testing.T) {
	original := ingestService
	ingestService = nil
	defer func() { ingestService = original }()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))

	_, err := execute(t, "ingest", path)
	assert.EqualError(t, err, "ingest service not configured")
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "text/markdown", detectMimeType("readme.md"))
	assert.Equal(t, "text/csv", detectMimeType("data.CSV"))
	assert.Equal(t, "application/json", detectMimeType("payload.json"))
	assert.Equal(t, "text/plain", detectMimeType("notes.txt"))
	assert.Equal(t, "text/plain", detectMimeType("noext"))
}
