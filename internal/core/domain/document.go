package domain

import "time"

// PreviewLength is the number of leading characters of document content
// kept on the Document record for display purposes.
const PreviewLength = 200

// Document represents an ingested document with metadata.
// It is created once per successful ingestion and is immutable
// thereafter except for deletion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable name (usually the file name).
	Name string

	// MimeType is the declared content type of the original upload.
	MimeType string

	// ByteSize is the length of the extracted text in bytes.
	ByteSize int64

	// ContentPreview holds the first PreviewLength characters of the text.
	ContentPreview string

	// Provider identifies the embedding provider used at ingestion time.
	// Vectors from different providers must never be compared.
	Provider string

	// Dimensions is the embedding vector size used at ingestion time.
	Dimensions int

	// ProcessedAt is when ingestion completed.
	ProcessedAt time.Time

	// Chunks holds the document's chunks when loaded with GetAll.
	// Ordered by Index.
	Chunks []Chunk
}

// Chunk represents a retrievable unit within a document.
// Chunks are created only as a side effect of ingesting their parent
// document and are deleted en masse with it.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Index is the ordinal position within the document.
	// Ordering chunks by Index reconstructs document order.
	Index int

	// StartOffset is the rune offset where this chunk begins.
	StartOffset int

	// EndOffset is the rune offset where this chunk ends.
	// Always greater than StartOffset.
	EndOffset int

	// Embedding is the vector representation for similarity scoring.
	Embedding []float32

	// Provider identifies the embedding provider that produced Embedding.
	Provider string
}

// Preview returns the first PreviewLength characters of text.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength])
}
