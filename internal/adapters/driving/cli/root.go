// Package cli implements the cobra command tree, the driving adapter
// users interact with.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/embedding"
	embollama "github.com/docchat-labs/docchat-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/docchat-labs/docchat-cli/internal/adapters/driven/llm/ollama"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docchat-labs/docchat-cli/internal/chunker"
	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/core/services"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by initServices; tests substitute fakes directly.
var (
	configStore      driven.ConfigStore
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	chatService      driving.ChatService

	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents, locally",
	Long: `docchat answers questions using the content of your own documents.
Documents are chunked, embedded, and stored locally; every question
retrieves the most relevant passages and grounds the model's answer
on them. Everything runs on your machine.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the services and runs the command tree.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeAll()
	return rootCmd.Execute()
}

// initServices builds the full adapter stack from configuration.
func initServices() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = cfg

	store, err := sqlite.NewStore(cfg.GetString("storage.dir"))
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	closers = append(closers, store.Close)

	native := embollama.NewEmbeddingService(embollama.Config{
		BaseURL: cfg.GetString("ollama.url"),
		Model:   cfg.GetString("ollama.embedding_model"),
	})
	provider := embedding.NewProvider(native)

	llm := llmollama.NewLLMService(llmollama.Config{
		BaseURL: cfg.GetString("ollama.url"),
		Model:   cfg.GetString("ollama.model"),
	})
	closers = append(closers, llm.Close)

	var chunkOpts []chunker.Option
	if size := cfg.GetInt("chunk.size"); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunk.overlap"); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}
	ingestService = services.NewIngestService(store, provider, chunker.New(chunkOpts...))

	retrieval := services.NewRetrievalService(store, provider)
	if floor := cfg.GetFloat("retrieval.floor"); floor > 0 {
		retrieval.SetFloor(floor)
	}
	if k := cfg.GetInt("retrieval.top_k"); k > 0 {
		retrieval.SetTopK(k)
	}
	retrievalService = retrieval

	variant := domain.DefaultTemplate
	if name := cfg.GetString("template.variant"); name != "" {
		variant, err = domain.ParseTemplateVariant(name)
		if err != nil {
			return fmt.Errorf("reading template.variant: %w", err)
		}
	}

	chat := services.NewChatService(retrieval, services.NewPromptBuilder(variant), llm, provider)
	if k := cfg.GetInt("retrieval.top_k"); k > 0 {
		chat.SetTopK(k)
	}
	chat.SetGenerateOptions(driven.GenerateOptions{
		Temperature:   cfg.GetFloat("generate.temperature"),
		TopK:          cfg.GetInt("generate.top_k"),
		TopP:          cfg.GetFloat("generate.top_p"),
		RepeatPenalty: cfg.GetFloat("generate.repeat_penalty"),
		MaxTokens:     cfg.GetInt("generate.max_tokens"),
	})
	chatService = chat

	return nil
}

func closeAll() {
	for _, fn := range closers {
		if err := fn(); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}
	closers = nil
}
