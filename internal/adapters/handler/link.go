package handler

import (
	"bangerbot/internal/core/domain"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type LinkRunner interface {
	Run(ctx context.Context, message *domain.Message) (domain.Outcome, error)
}

// Link hands messages carrying a URL to the download and upload workflow.
type Link struct {
	workflow LinkRunner
}

func NewLink(workflow LinkRunner) *Link {
	return &Link{workflow: workflow}
}

func (h *Link) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	message := toMessage(update.Message)

	outcome, err := h.workflow.Run(ctx, message)
	if err != nil {
		log.Err(err).Int("messageId", message.ID).Str("outcome", string(outcome)).Msg("link workflow failed")
		return
	}

	log.Debug().Int("messageId", message.ID).Str("outcome", string(outcome)).Msg("link workflow finished")
}
