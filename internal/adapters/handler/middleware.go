package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, chatID int64) bool
	// Reject tells the chat it is not allowed to use the bot.
	Reject(ctx context.Context, chatID int64)
}

type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Authorize drops updates from chats the authorizer rejects. Rejected messages get a
// warning. Rejected button presses are only answered, so the client stops waiting.
func Authorize(authorizer Authorizer, answerer CallbackAnswerer) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID, ok := updateChatID(update)
			if !ok {
				next(ctx, b, update)
				return
			}

			if authorizer.IsAuthorized(ctx, chatID) {
				next(ctx, b, update)
				return
			}

			l := log.With().Int64("chatId", chatID).Logger()
			l.Warn().Msg("update from unauthorized chat")

			switch {
			case update.Message != nil:
				authorizer.Reject(ctx, chatID)
			case update.CallbackQuery != nil:
				err := answerer.AnswerCallback(ctx, update.CallbackQuery.ID)
				if err != nil {
					l.Warn().Err(err).Msg("failed to answer rejected callback")
				}
			}
		}
	}
}

func updateChatID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message.InaccessibleMessage != nil:
		return update.CallbackQuery.Message.InaccessibleMessage.Chat.ID, true
	default:
		return 0, false
	}
}
