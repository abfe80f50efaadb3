package services

import (
	"context"
	"errors"
	"testing"

	"pitstop/internal/config"
	"pitstop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBuildMessages(t *testing.T) {
	msgs := BuildMessages("sistema", "¿tienen cascos?", "\nCascos disponibles:\nX")

	assert.Equal(t, []ChatMessage{
		{Role: ChatMessageRoleSystem, Content: "sistema"},
		{Role: ChatMessageRoleUser, Content: "Consulta del usuario: ¿tienen cascos?"},
		{Role: ChatMessageRoleAssistant, Content: "Información disponible de Shopify:\n\nCascos disponibles:\nX"},
	}, msgs)
}

func TestReplyService_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := new(mockCompleter)
		m.On("GenerateChatCompletion", mock.Anything, BuildMessages("p", "q", "c")).Return("Hola", nil).Once()

		res := NewReplyService(m, "p").Request(ctx, "q", "c")

		assert.True(t, res.OK())
		assert.Equal(t, "Hola", res.TextOr(config.DefaultFallbackReply))
		m.AssertExpectations(t)
	})

	t.Run("provider error yields fallback", func(t *testing.T) {
		m := new(mockCompleter)
		m.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		res := NewReplyService(m, "p").Request(ctx, "q", "c")

		assert.False(t, res.OK())
		assert.Equal(t, config.DefaultFallbackReply, res.TextOr(config.DefaultFallbackReply))
	})

	t.Run("blank reply is a failure", func(t *testing.T) {
		m := new(mockCompleter)
		m.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("  ", nil).Once()

		res := NewReplyService(m, "p").Request(ctx, "q", "c")

		assert.ErrorIs(t, res.Err, models.ErrEmptyCompletion)
	})

	t.Run("no provider", func(t *testing.T) {
		res := NewReplyService(nil, "p").Request(ctx, "q", "c")
		assert.ErrorIs(t, res.Err, models.ErrProviderDisabled)
	})
}
