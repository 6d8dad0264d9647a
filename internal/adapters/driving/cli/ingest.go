package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var ingestMimeType string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest text documents for retrieval",
	Long: `Reads each file, splits it into overlapping chunks, embeds every
chunk, and stores the result durably. Ingested documents are available
to ask and chat immediately.

Only plain-text formats are read directly; run binary formats (PDF,
DOC) through an extractor first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestMimeType, "mime-type", "", "override the detected MIME type")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		mimeType := ingestMimeType
		if mimeType == "" {
			mimeType = detectMimeType(path)
		}

		doc, err := ingestService.Ingest(ctx, filepath.Base(path), mimeType, string(data))
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("Ingested %s: %d chunks (id: %s)\n", doc.Name, len(doc.Chunks), doc.ID)
	}
	return nil
}

func detectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return "text/markdown"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "text/plain"
	}
}
