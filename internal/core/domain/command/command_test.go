package command

import (
	"bangerbot/internal/core/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTextSender struct {
	text    string
	buttons []domain.Button
	err     error
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string,
	buttons ...domain.Button) (int, error) {
	m.text = text
	m.buttons = buttons
	return 1, m.err
}

func (m *mockTextSender) EditMessage(_ context.Context, _ int64, _ int, _ string) error {
	return nil
}

func (m *mockTextSender) AnswerCallback(_ context.Context, _ string) error {
	return nil
}

func TestStart_Respond(t *testing.T) {
	sender := &mockTextSender{}
	start := NewStart(sender, "/start")

	require.NoError(t, start.Respond(t.Context(), &domain.Message{ID: 1, ChatID: 2}))

	assert.Equal(t, "/start", start.GetCommand())
	assert.Equal(t, domain.TextStart, sender.text)
	assert.Empty(t, sender.buttons)
}

func TestHelp_Respond(t *testing.T) {
	sender := &mockTextSender{}
	help := NewHelp(sender, "/help")

	require.NoError(t, help.Respond(t.Context(), &domain.Message{ID: 1, ChatID: 2}))

	assert.Equal(t, domain.TextHelp, sender.text)
	assert.Equal(t, []domain.Button{{Text: "Github Page", URL: "https://github.com/LuchoTurtle/banger-bot"}},
		sender.buttons)
}

func TestHelp_RespondSendFails(t *testing.T) {
	sender := &mockTextSender{err: errors.New("fail")}

	err := NewHelp(sender, "/help").Respond(t.Context(), &domain.Message{ID: 1, ChatID: 2})
	require.Error(t, err)
}
