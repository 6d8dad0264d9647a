package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// fakeIngestService records calls and replies with canned documents.
type fakeIngestService struct {
	ingested  []string
	deleted   []string
	docs      []domain.Document
	ingestErr error
	listErr   error
	deleteErr error
}

func (f *fakeIngestService) Ingest(_ context.Context, name, mimeType, text string) (*domain.Document, error) {
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	f.ingested = append(f.ingested, name)
	return &domain.Document{
		ID:       "doc-" + name,
		Name:     name,
		MimeType: mimeType,
		ByteSize: int64(len(text)),
		Chunks:   []domain.Chunk{{ID: "c-0", Index: 0}},
	}, nil
}

func (f *fakeIngestService) List(context.Context) ([]domain.Document, error) {
	return f.docs, f.listErr
}

func (f *fakeIngestService) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeChatService replies with a fixed answer and sources.
type fakeChatService struct {
	answer   string
	sources  []domain.RetrievalResult
	degraded bool
	err      error
}

func (f *fakeChatService) Ask(context.Context, []domain.ConversationTurn, string) (*domain.ChatReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ChatReply{Answer: f.answer, Sources: f.sources, Degraded: f.degraded}, nil
}

func (f *fakeChatService) AskStream(context.Context, []domain.ConversationTurn, string) (*domain.StreamReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan domain.StreamToken, 2)
	ch <- domain.StreamToken{Content: f.answer}
	ch <- domain.StreamToken{Done: true}
	close(ch)
	return &domain.StreamReply{Sources: f.sources, Degraded: f.degraded, Tokens: ch}, nil
}

// execute runs the root command with the given args against stubbed
// services and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

// withIngestService swaps in a fake for the duration of the test.
func withIngestService(t *testing.T, svc *fakeIngestService) {
	t.Helper()
	original := ingestService
	ingestService = svc
	t.Cleanup(func() { ingestService = original })
}

func withChatService(t *testing.T, svc *fakeChatService) {
	t.Helper()
	original := chatService
	chatService = svc
	t.Cleanup(func() { chatService = original })
}
