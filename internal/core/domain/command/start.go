package command

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"

	"github.com/rs/zerolog/log"
)

type Start struct {
	textSender port.TextSender
	command    string
}

func NewStart(sender port.TextSender, command string) *Start {
	return &Start{textSender: sender, command: command}
}

func (s *Start) GetCommand() string {
	return s.command
}

func (s *Start) Respond(ctx context.Context, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Msg("handling request")

	_, err := s.textSender.SendMessageReply(ctx, message, domain.TextStart)
	return err
}
