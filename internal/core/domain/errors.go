package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// The store itself is initialised; the item is genuinely absent.
	ErrNotFound = errors.New("not found")

	// ErrStoreNotReady indicates a store operation was attempted before
	// the store finished initialising. Distinct from ErrNotFound so
	// callers can tell "not ready yet" from "genuinely absent".
	ErrStoreNotReady = errors.New("store not ready")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the native embedding path failed.
	// Recovered locally via the deterministic fallback embedder.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the inference engine is not configured.
	// Prompt assembly still works; generation does not.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrProviderMismatch indicates stored embeddings were produced by a
	// different provider than the one answering the query. Scoring such
	// vectors would produce meaningless similarities.
	ErrProviderMismatch = errors.New("embedding provider mismatch")

	// ErrUnknownTemplate indicates an unrecognised chat template variant.
	ErrUnknownTemplate = errors.New("unknown chat template")
)
