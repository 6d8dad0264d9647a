package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

var chatShowSources bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a multi-turn conversation. Each turn retrieves fresh evidence
from your documents; when relevant chunks are found they take
precedence over earlier conversation context for that turn.

Type "exit" or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatShowSources, "sources", false, "show the source documents after each answer")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	ctx := cmd.Context()

	cmd.Println("docchat - chat with your documents (type \"exit\" to quit)")
	cmd.Println()

	var history []domain.ConversationTurn
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			return nil
		}

		reply, err := chatService.AskStream(ctx, history, message)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		var answer strings.Builder
		failed := false
		for tok := range reply.Tokens {
			if tok.Err != nil {
				cmd.PrintErrf("\nError: %v\n", tok.Err)
				failed = true
				break
			}
			cmd.Print(tok.Content)
			answer.WriteString(tok.Content)
		}
		cmd.Println()
		if failed {
			continue
		}
		if reply.Degraded {
			cmd.Println("\n(degraded mode: some documents or the embedding model were unavailable)")
		}

		if chatShowSources {
			printSources(cmd, reply.Sources)
		}

		history = append(history,
			domain.ConversationTurn{Role: domain.RoleUser, Content: message},
			domain.ConversationTurn{Role: domain.RoleAssistant, Content: answer.String()},
		)
	}
}

// printSources lists the evidence chunks behind an answer.
func printSources(cmd *cobra.Command, sources []domain.RetrievalResult) {
	if len(sources) == 0 {
		cmd.Println("\nNo document sources used.")
		return
	}
	cmd.Println("\nSources:")
	for i, src := range sources {
		snippet := src.Chunk.Content
		if len(snippet) > 80 {
			snippet = snippet[:80] + "..."
		}
		cmd.Printf("  [%d] %s #%d (%.2f): %s\n",
			i+1, src.Chunk.DocumentID, src.Chunk.Index, src.Score, snippet)
	}
}
