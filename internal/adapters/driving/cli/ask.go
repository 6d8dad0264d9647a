package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askShowSources bool
	askNoStream    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question against your documents",
	Long: `Retrieves the most relevant chunks from your ingested documents and
asks the model to answer grounded on them. With no relevant documents
the model answers from general knowledge.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "show the source documents used")
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "wait for the full answer instead of streaming")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	ctx := cmd.Context()
	question := args[0]

	if askNoStream {
		reply, err := chatService.Ask(ctx, nil, question)
		if err != nil {
			return fmt.Errorf("asking failed: %w", err)
		}
		cmd.Println(reply.Answer)
		if reply.Degraded {
			cmd.Println("\n(degraded mode: some documents or the embedding model were unavailable)")
		}
		if askShowSources {
			printSources(cmd, reply.Sources)
		}
		return nil
	}

	reply, err := chatService.AskStream(ctx, nil, question)
	if err != nil {
		return fmt.Errorf("asking failed: %w", err)
	}
	for tok := range reply.Tokens {
		if tok.Err != nil {
			return fmt.Errorf("generation failed: %w", tok.Err)
		}
		cmd.Print(tok.Content)
	}
	cmd.Println()
	if reply.Degraded {
		cmd.Println("\n(degraded mode: some documents or the embedding model were unavailable)")
	}
	if askShowSources {
		printSources(cmd, reply.Sources)
	}
	return nil
}
