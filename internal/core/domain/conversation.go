package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a turn authored by the model.
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one turn of the dialogue history fed to prompt
// assembly. The core treats the history as read-only input; it is
// owned and appended to by the caller.
type ConversationTurn struct {
	// Role is who authored the turn.
	Role Role

	// Content is the turn text.
	Content string
}

// RetrievalResult pairs a chunk with its similarity score for a query.
// Results are ephemeral and never persisted.
type RetrievalResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity against the query, in [-1, 1].
	Score float64
}

// ChatReply is the outcome of a full chat turn: the generated answer
// plus the evidence it was grounded on.
type ChatReply struct {
	// Answer is the generated completion text.
	Answer string

	// Sources are the retrieval results used to assemble the prompt.
	// Empty when the turn was answered from general knowledge.
	Sources []RetrievalResult

	// Degraded is true when document retrieval was unavailable for
	// this turn and the answer came from general knowledge only.
	Degraded bool
}

// StreamReply is the outcome of a streaming chat turn. Sources and
// Degraded are known up front; the answer arrives on Tokens.
type StreamReply struct {
	// Sources are the retrieval results used to assemble the prompt.
	Sources []RetrievalResult

	// Degraded is true when document retrieval was unavailable for
	// this turn and the answer comes from general knowledge only.
	Degraded bool

	// Tokens delivers the answer incrementally until closed.
	Tokens <-chan StreamToken
}

// StreamToken is a single increment of a streaming completion.
type StreamToken struct {
	// Content is the token text.
	Content string

	// Done marks the final token of the stream.
	Done bool

	// Err carries a mid-stream failure. The stream closes after it.
	Err error
}
