package driving

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// RetrievalService finds the stored chunks most relevant to a query.
type RetrievalService interface {
	// Retrieve embeds the query and scores it against every stored
	// chunk, returning at most k results sorted descending by score.
	// Zero results is a normal outcome, not an error: it means no
	// stored chunk cleared the relevance floor.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error)
}

// ChatService orchestrates a full chat turn: retrieval, prompt
// assembly, and generation.
type ChatService interface {
	// Ask runs one turn. Retrieval happens once; its result feeds both
	// the prompt and the reply's Sources.
	Ask(ctx context.Context, history []domain.ConversationTurn, message string) (*domain.ChatReply, error)

	// AskStream runs one turn with a streaming answer. The reply's
	// Sources and Degraded flag are known before the first token;
	// tokens arrive on the reply's channel until it closes.
	AskStream(ctx context.Context, history []domain.ConversationTurn, message string) (*domain.StreamReply, error)
}
