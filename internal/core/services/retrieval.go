package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

const (
	// DefaultFloor is the minimum similarity score for a chunk to count
	// as relevant. Conservative on purpose: a noise chunk in the prompt
	// is worse than no chunk.
	DefaultFloor = 0.3

	// DefaultTopK is the result count used when the caller passes k <= 0.
	DefaultTopK = 5
)

// RetrievalService scores a query against every stored chunk and
// returns the best matches. Cost is O(n*dim) per query over all stored
// chunks, fine for tens of documents, not for large corpora.
type RetrievalService struct {
	store    driven.DocumentStore
	provider driven.EmbeddingProvider
	floor    float64
	topK     int
}

// NewRetrievalService creates a new retrieval service with the default
// similarity floor and top-k.
func NewRetrievalService(store driven.DocumentStore, provider driven.EmbeddingProvider) *RetrievalService {
	return &RetrievalService{
		store:    store,
		provider: provider,
		floor:    DefaultFloor,
		topK:     DefaultTopK,
	}
}

// SetFloor overrides the similarity floor.
func (s *RetrievalService) SetFloor(floor float64) {
	s.floor = floor
}

// SetTopK overrides the default result count.
func (s *RetrievalService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// Retrieve embeds the query and ranks every stored chunk by cosine
// similarity. Results below the floor are discarded; zero results is a
// normal outcome. Chunks embedded under a different provider than the
// active one are excluded from scoring, and if every stored chunk is
// excluded that way the mismatch is surfaced as an error rather than a
// silent empty result.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}
	if k <= 0 {
		k = s.topK
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q (k=%d, floor=%.2f)", query, k, s.floor)

	if err := s.provider.Init(ctx); err != nil {
		logger.Warn("Embedding init failed, querying degraded: %v", err)
	}

	queryVec, queryPath, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := s.store.ScanAllChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Store is empty")
		return []domain.RetrievalResult{}, nil
	}

	var results []domain.RetrievalResult
	mismatched := 0
	for _, chunk := range chunks {
		// Scores across paths are meaningless; compare chunks only
		// against the path that embedded this query.
		if chunk.Provider != queryPath || len(chunk.Embedding) != len(queryVec) {
			mismatched++
			continue
		}
		score := domain.CosineSimilarity(queryVec, chunk.Embedding)
		if score <= s.floor {
			continue
		}
		results = append(results, domain.RetrievalResult{Chunk: chunk, Score: score})
	}

	if mismatched > 0 {
		logger.Warn("Skipped %d chunks embedded under a different provider (query path: %s)",
			mismatched, queryPath)
		if mismatched == len(chunks) {
			return nil, fmt.Errorf("all %d stored chunks were embedded under a different provider: %w",
				mismatched, domain.ErrProviderMismatch)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	logger.Debug("Returning %d results", len(results))
	return results, nil
}
