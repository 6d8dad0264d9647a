package services

import (
	"context"
	"fmt"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService orchestrates one chat turn: retrieve evidence once,
// assemble the prompt, call the inference engine, and report the
// evidence as the reply's sources.
type ChatService struct {
	retrieval driving.RetrievalService
	builder   *PromptBuilder
	llm       driven.LLMService
	provider  driven.EmbeddingProvider
	opts      driven.GenerateOptions
	topK      int
}

// NewChatService creates a new chat service. The provider is only read
// for its degraded status; embedding itself happens inside retrieval.
func NewChatService(
	retrieval driving.RetrievalService,
	builder *PromptBuilder,
	llm driven.LLMService,
	provider driven.EmbeddingProvider,
) *ChatService {
	if builder == nil {
		builder = NewPromptBuilder(domain.DefaultTemplate)
	}
	return &ChatService{
		retrieval: retrieval,
		builder:   builder,
		llm:       llm,
		provider:  provider,
		topK:      DefaultTopK,
	}
}

// SetGenerateOptions overrides the generation parameters passed to the
// inference engine. The values are opaque to this layer.
func (s *ChatService) SetGenerateOptions(opts driven.GenerateOptions) {
	s.opts = opts
}

// SetTopK overrides how many chunks are retrieved per turn.
func (s *ChatService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// prepare runs retrieval once and builds the prompt from its result.
// A failed retrieval degrades the turn to general-knowledge framing
// instead of failing it.
func (s *ChatService) prepare(
	ctx context.Context, history []domain.ConversationTurn, message string,
) (string, []domain.RetrievalResult, bool) {
	degraded := false
	results, err := s.retrieval.Retrieve(ctx, message, s.topK)
	if err != nil {
		logger.Warn("Documents unavailable for this turn: %v", err)
		results = nil
		degraded = true
	}
	if s.provider != nil && s.provider.Degraded() {
		degraded = true
	}
	prompt := s.builder.Build(history, message, results)
	return prompt, results, degraded
}

// Ask runs one full turn and returns the generated answer together
// with the evidence it was grounded on.
func (s *ChatService) Ask(
	ctx context.Context, history []domain.ConversationTurn, message string,
) (*domain.ChatReply, error) {
	if message == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt, results, degraded := s.prepare(ctx, history, message)

	answer, err := s.llm.Generate(ctx, prompt, s.opts)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &domain.ChatReply{
		Answer:   answer,
		Sources:  results,
		Degraded: degraded,
	}, nil
}

// AskStream runs one turn with a streaming answer. The reply carries
// the same evidence and degradation status Ask would report; only the
// answer arrives incrementally.
func (s *ChatService) AskStream(
	ctx context.Context, history []domain.ConversationTurn, message string,
) (*domain.StreamReply, error) {
	if message == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt, results, degraded := s.prepare(ctx, history, message)

	tokens, err := s.llm.GenerateStream(ctx, prompt, s.opts)
	if err != nil {
		return nil, fmt.Errorf("starting generation: %w", err)
	}
	return &domain.StreamReply{
		Sources:  results,
		Degraded: degraded,
		Tokens:   tokens,
	}, nil
}
