package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change configuration values stored in the docchat config file.

Settings:
  chunk.size              chunk window size in characters (default 500)
  chunk.overlap           overlap between chunks in characters (default 50)
  retrieval.floor         minimum similarity score for relevance (default 0.3)
  retrieval.top_k         chunks retrieved per question (default 5)
  template.variant        chat template: gemma, chatml, mistral, generic
  ollama.url              Ollama base URL
  ollama.model            generation model
  ollama.embedding_model  embedding model`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// shownKeys is the display order for config show.
var shownKeys = []string{
	"chunk.size",
	"chunk.overlap",
	"retrieval.floor",
	"retrieval.top_k",
	"template.variant",
	"ollama.url",
	"ollama.model",
	"ollama.embedding_model",
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration (%s)\n\n", configStore.Path())
	for _, key := range shownKeys {
		if val, ok := configStore.Get(key); ok {
			cmd.Printf("  %-24s %v\n", key, val)
		} else {
			cmd.Printf("  %-24s (default)\n", key)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key, raw := args[0], args[1]

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

// parseConfigValue validates known keys and converts the raw string to
// the value type the key expects. Unknown keys are stored as strings.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case "chunk.size", "chunk.overlap", "retrieval.top_k":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s expects a non-negative integer, got %q", key, raw)
		}
		return n, nil
	case "retrieval.floor":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", key, raw)
		}
		return f, nil
	case "template.variant":
		variant, err := domain.ParseTemplateVariant(raw)
		if err != nil {
			return nil, err
		}
		return string(variant), nil
	default:
		return raw, nil
	}
}
