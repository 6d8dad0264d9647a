package domain

import "fmt"

// TemplateVariant selects the chat-markup grammar used when assembling
// prompts. Each variant matches a specific model family's training
// format; the delimiter strings must be reproduced exactly, as any
// deviation degrades generation quality silently.
type TemplateVariant string

const (
	// TemplateGemma uses <start_of_turn>/<end_of_turn> delimiters.
	TemplateGemma TemplateVariant = "gemma"

	// TemplateChatML uses <|im_start|>/<|im_end|> delimiters with the
	// "assistant" role name.
	TemplateChatML TemplateVariant = "chatml"

	// TemplateMistral uses [INST]/[/INST] delimiters; assistant turns
	// are emitted unwrapped.
	TemplateMistral TemplateVariant = "mistral"

	// TemplateGeneric is role-parameterised ChatML: every turn uses the
	// <|im_start|>{role} form, whatever the role.
	TemplateGeneric TemplateVariant = "generic"
)

// DefaultTemplate is used when no variant is configured.
const DefaultTemplate = TemplateGemma

// ParseTemplateVariant validates a variant name from config or flags.
func ParseTemplateVariant(s string) (TemplateVariant, error) {
	switch TemplateVariant(s) {
	case TemplateGemma, TemplateChatML, TemplateMistral, TemplateGeneric:
		return TemplateVariant(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// WrapUser wraps a user turn in the variant's delimiters.
func (v TemplateVariant) WrapUser(content string) string {
	switch v {
	case TemplateChatML:
		return "<|im_start|>user\n" + content + "<|im_end|>"
	case TemplateMistral:
		return "[INST] " + content + " [/INST]"
	case TemplateGeneric:
		return "<|im_start|>" + string(RoleUser) + "\n" + content + "<|im_end|>"
	default: // TemplateGemma
		return "<start_of_turn>user\n" + content + "<end_of_turn>"
	}
}

// WrapAssistant wraps an assistant turn in the variant's delimiters.
func (v TemplateVariant) WrapAssistant(content string) string {
	switch v {
	case TemplateChatML:
		return "<|im_start|>assistant\n" + content + "<|im_end|>"
	case TemplateMistral:
		// Mistral assistant turns are emitted bare.
		return content
	case TemplateGeneric:
		return "<|im_start|>" + string(RoleAssistant) + "\n" + content + "<|im_end|>"
	default: // TemplateGemma
		return "<start_of_turn>model\n" + content + "<end_of_turn>"
	}
}

// Opener returns the empty assistant-turn opener appended after the
// final user turn, signalling the inference engine where generation
// begins. For the Mistral grammar generation continues directly after
// the closing [/INST], so the opener is empty.
func (v TemplateVariant) Opener() string {
	switch v {
	case TemplateChatML, TemplateGeneric:
		return "<|im_start|>assistant\n"
	case TemplateMistral:
		return ""
	default: // TemplateGemma
		return "<start_of_turn>model\n"
	}
}
