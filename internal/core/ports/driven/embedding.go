package driven

import "context"

// EmbeddingService generates vector embeddings from text. This is the
// native embedding path, typically a local inference server.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Any HTTP service exposing an embeddings endpoint
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request, without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingProvider is the capability handed to ingestion and
// retrieval. It owns the native/fallback selection: when the native
// path is unavailable it degrades to a deterministic pseudo-embedding
// rather than failing outright.
//
// One provider instance must always yield vectors of identical length,
// so similarity scoring across chunks produced under it is
// well-defined. Vectors from different providers must never be
// compared; Name identifies the active path for mismatch detection.
type EmbeddingProvider interface {
	// Init performs lazy, idempotent initialisation. Concurrent
	// callers coalesce onto one in-flight attempt; a failed attempt is
	// retryable on the next call, not cached as permanently failed.
	Init(ctx context.Context) error

	// Embed returns a fixed-length vector for the text together with
	// the name of the path that actually produced it. Never fails
	// outright on native-path errors; it degrades to the fallback, and
	// the returned name reports the fallback when it does. Stored
	// vectors must be tagged with this name, not with Name, so a
	// per-call degradation cannot mistag a vector.
	Embed(ctx context.Context, text string) ([]float32, string, error)

	// Name identifies the active path, e.g. "native:nomic-embed-text"
	// or "fallback".
	Name() string

	// Dimensions returns the vector length of the active path.
	Dimensions() int

	// Degraded reports whether the provider is running on the
	// fallback pseudo-embedding.
	Degraded() bool
}
