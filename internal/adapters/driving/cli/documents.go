package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocuments,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete an ingested document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docs, err := ingestService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentsJSON {
		return outputDocumentsJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for _, doc := range docs {
		cmd.Printf("  %s\n", doc.Name)
		cmd.Printf("      ID: %s\n", doc.ID)
		cmd.Printf("      Chunks: %d, Size: %d bytes, Embedding: %s (%d dims)\n",
			len(doc.Chunks), doc.ByteSize, doc.Provider, doc.Dimensions)
		cmd.Printf("      Ingested: %s\n", doc.ProcessedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	return nil
}

func outputDocumentsJSON(cmd *cobra.Command, docs []domain.Document) error {
	// Embeddings are bulky and meaningless to a reader; list metadata only
	type docInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		MimeType    string `json:"mimeType"`
		ByteSize    int64  `json:"byteSize"`
		Chunks      int    `json:"chunks"`
		Provider    string `json:"provider"`
		Dimensions  int    `json:"dimensions"`
		ProcessedAt string `json:"processedAt"`
	}
	infos := make([]docInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, docInfo{
			ID:          doc.ID,
			Name:        doc.Name,
			MimeType:    doc.MimeType,
			ByteSize:    doc.ByteSize,
			Chunks:      len(doc.Chunks),
			Provider:    doc.Provider,
			Dimensions:  doc.Dimensions,
			ProcessedAt: doc.ProcessedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if err := ingestService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
