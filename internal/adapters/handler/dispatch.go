package handler

import (
	"bangerbot/internal/core/domain"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Registrar is the handler registration subset of *bot.Bot.
type Registrar interface {
	RegisterHandler(handlerType bot.HandlerType, pattern string, matchType bot.MatchType, f bot.HandlerFunc,
		m ...bot.Middleware) string
	RegisterHandlerMatchFunc(matchFunc bot.MatchFunc, f bot.HandlerFunc, m ...bot.Middleware) string
}

// Register wires every update shape the bot reacts to, each behind the middlewares m. The
// match funcs are disjoint, so registration order does not matter.
func Register(r Registrar, commands *Command, links *Link, audio *Audio, m ...bot.Middleware) {
	r.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commands.Handle, m...)
	r.RegisterHandlerMatchFunc(IsAudio, audio.HandleFile, m...)
	r.RegisterHandlerMatchFunc(HasURL, links.Handle, m...)
	r.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, audio.HandleCallback, m...)
}

// IsAudio matches messages carrying an audio file or a voice note.
func IsAudio(update *models.Update) bool {
	return update.Message != nil && (update.Message.Audio != nil || update.Message.Voice != nil)
}

// HasURL matches non-command text messages with a URL entity.
func HasURL(update *models.Update) bool {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return false
	}

	for _, entity := range update.Message.Entities {
		if entity.Type == models.MessageEntityTypeURL {
			return true
		}
	}

	return domain.ParseMetadata(update.Message.Text).URL != ""
}
