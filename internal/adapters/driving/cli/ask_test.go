package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

func TestAskCmd_Streams(t *testing.T) {
	withChatService(t, &fakeChatService{answer: "Krill, mostly."})

	out, err := execute(t, "ask", "What do penguins eat?")

	require.NoError(t, err)
	assert.Contains(t, out, "Krill, mostly.")
}

func TestAskCmd_NoStream(t *testing.T) {
	withChatService(t, &fakeChatService{answer: "Krill, mostly."})

	out, err := execute(t, "ask", "--no-stream", "What do penguins eat?")
	askNoStream = false

	require.NoError(t, err)
	assert.Contains(t, out, "Krill, mostly.")
}

func TestAskCmd_ShowsSources(t *testing.T) {
	withChatService(t, &fakeChatService{
		answer: "Krill.",
		sources: []domain.RetrievalResult{
			{Chunk: domain.Chunk{DocumentID: "doc-1", Content: "Penguins eat krill."}, Score: 0.87},
		},
	})

	out, err := execute(t, "ask", "--sources", "What do penguins eat?")
	askShowSources = false

	require.NoError(t, err)
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "0.87")
}

func TestAskCmd_StreamsDegradedNotice(t *testing.T) {
	withChatService(t, &fakeChatService{answer: "From general knowledge.", degraded: true})

	out, err := execute(t, "ask", "What do penguins eat?")

	require.NoError(t, err)
	assert.Contains(t, out, "From general knowledge.")
	assert.Contains(t, out, "degraded mode")
}

func TestAskCmd_Error(t *testing.T) {
	withChatService(t, &fakeChatService{err: errors.New("model offline")})

	_, err := execute(t, "ask", "anything")
	assert.ErrorContains(t, err, "model offline")
}

func TestAskCmd_RequiresService(t *testing.T) {
	original := chatService
	chatService = nil
	defer func() { chatService = original }()

	_, err := execute(t, "ask", "anything")
	assert.EqualError(t, err, "chat service not configured")
}

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat", chatCmd.Use)
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestChatCmd_Session(t *testing.T) {
	withChatService(t, &fakeChatService{answer: "An answer."})

	rootCmd.SetIn(strings.NewReader("first question\nexit\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Contains(t, out, "An answer.")
}

func TestChatCmd_EOFEndsSession(t *testing.T) {
	withChatService(t, &fakeChatService{answer: "An answer."})

	rootCmd.SetIn(strings.NewReader(""))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	_, err := execute(t, "chat")
	assert.NoError(t, err)
}
