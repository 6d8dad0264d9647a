package services

import (
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// Fixed framing for the evidence path. These strings are part of the
// prompt contract with the model: keep them stable.
const (
	evidencePreamble = "You are a helpful assistant. Use the reference material below to answer " +
		"the user's question whenever it is relevant."

	evidenceInstruction = "Answer the question using the reference material above. If the material " +
		"does not contain the answer, say so, then answer from general knowledge."
)

// PromptBuilder assembles a single model-ready prompt string from
// conversation history, a new user message, and retrieved evidence,
// following one of the chat template grammars. Stateless between
// calls.
type PromptBuilder struct {
	variant domain.TemplateVariant
}

// NewPromptBuilder creates a builder for the given template variant.
func NewPromptBuilder(variant domain.TemplateVariant) *PromptBuilder {
	if variant == "" {
		variant = domain.DefaultTemplate
	}
	return &PromptBuilder{variant: variant}
}

// Variant returns the active template variant.
func (b *PromptBuilder) Variant() domain.TemplateVariant {
	return b.variant
}

// Build assembles the prompt for one turn. When evidence is present it
// takes precedence over multi-turn context: the prompt carries the
// preamble, each chunk labeled with its source document id, the
// literal question, and the instruction block, with the conversation
// history left out for that turn. Without evidence the bare question
// is wrapped together with the history in the variant's turn grammar.
func (b *PromptBuilder) Build(
	history []domain.ConversationTurn,
	message string,
	evidence []domain.RetrievalResult,
) string {
	if len(evidence) > 0 {
		return b.buildWithEvidence(message, evidence)
	}
	return b.buildFromHistory(history, message)
}

func (b *PromptBuilder) buildWithEvidence(message string, evidence []domain.RetrievalResult) string {
	var body strings.Builder
	body.WriteString(evidencePreamble)
	body.WriteString("\n\n")
	for _, result := range evidence {
		body.WriteString("[Document: ")
		body.WriteString(result.Chunk.DocumentID)
		body.WriteString("]\n")
		body.WriteString(result.Chunk.Content)
		body.WriteString("\n\n")
	}
	body.WriteString("Question: ")
	body.WriteString(message)
	body.WriteString("\n\n")
	body.WriteString(evidenceInstruction)

	return b.finish([]string{b.variant.WrapUser(body.String())})
}

func (b *PromptBuilder) buildFromHistory(history []domain.ConversationTurn, message string) string {
	parts := make([]string, 0, len(history)+2)
	for _, turn := range history {
		switch turn.Role {
		case domain.RoleAssistant:
			parts = append(parts, b.variant.WrapAssistant(turn.Content))
		default:
			parts = append(parts, b.variant.WrapUser(turn.Content))
		}
	}
	parts = append(parts, b.variant.WrapUser(message))
	return b.finish(parts)
}

// finish joins the wrapped turns and appends the assistant-turn opener
// that tells the model where to begin generating.
func (b *PromptBuilder) finish(parts []string) string {
	if opener := b.variant.Opener(); opener != "" {
		parts = append(parts, opener)
	}
	return strings.Join(parts, "\n")
}
