package command

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"

	"github.com/rs/zerolog/log"
)

// Help explains the tag syntax and links to the setup guide.
type Help struct {
	textSender port.TextSender
	command    string
}

func NewHelp(sender port.TextSender, command string) *Help {
	return &Help{textSender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Msg("handling request")

	_, err := h.textSender.SendMessageReply(ctx, message, domain.TextHelp,
		domain.Button{Text: domain.HelpLinkText, URL: domain.HelpLinkURL})
	return err
}
