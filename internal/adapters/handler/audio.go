package handler

import (
	"bangerbot/internal/core/domain"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type ActionRouter interface {
	Present(ctx context.Context, message *domain.Message) (domain.Outcome, error)
	Resolve(ctx context.Context, callback *domain.Callback) (domain.Outcome, error)
}

// Audio offers the identify and upload actions for audio files and voice notes, and
// carries out the one picked.
type Audio struct {
	router ActionRouter
}

func NewAudio(router ActionRouter) *Audio {
	return &Audio{router: router}
}

func (h *Audio) HandleFile(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	message := toMessage(update.Message)

	outcome, err := h.router.Present(ctx, message)
	if err != nil {
		log.Err(err).Int("messageId", message.ID).Msg("failed to present file actions")
		return
	}

	log.Debug().Int("messageId", message.ID).Str("outcome", string(outcome)).Msg("file handled")
}

func (h *Audio) HandleCallback(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := toCallback(update.CallbackQuery)

	outcome, err := h.router.Resolve(ctx, callback)
	if err != nil {
		log.Err(err).Str("callbackId", callback.ID).Str("outcome", string(outcome)).Msg("failed to resolve action")
		return
	}

	log.Debug().Str("callbackId", callback.ID).Str("outcome", string(outcome)).Msg("action resolved")
}
