package driven

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// LLMService is the inference engine: it accepts a finished prompt
// string plus generation parameters and returns generated text. This
// is an optional service - when nil, retrieval still works but no
// answers are generated.
type LLMService interface {
	// Generate produces a completion for the assembled prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// GenerateStream produces a completion as an incremental token
	// stream. The channel closes after the final token.
	GenerateStream(ctx context.Context, prompt string, opts GenerateOptions) (<-chan domain.StreamToken, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation. The values are opaque to
// the core; they pass through to the inference engine.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopK limits sampling to the K most likely tokens.
	TopK int

	// TopP is the nucleus sampling threshold.
	TopP float64

	// RepeatPenalty discourages repeated tokens.
	RepeatPenalty float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
