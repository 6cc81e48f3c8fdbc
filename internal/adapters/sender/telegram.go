package sender

import (
	"bangerbot/internal/adapters/file"
	"bangerbot/internal/core/domain"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramBot is the subset of *bot.Bot the sender needs.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string,
	buttons ...domain.Button) (int, error) {
	params := &bot.SendMessageParams{
		ChatID: message.ChatID,
		Text:   text,
	}

	if message.ID != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID: message.ID,
			ChatID:    message.ChatID,
		}
	}

	if len(buttons) > 0 {
		params.ReplyMarkup = inlineKeyboard(buttons)
	}

	sent, err := s.bot.SendMessage(ctx, params)
	if err != nil {
		log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
		return 0, err
	}

	return sent.ID, nil
}

func (s *Telegram) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := s.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})

	return err
}

func (s *Telegram) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := s.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})

	return err
}

func (s *Telegram) SendImageURL(ctx context.Context, chatID int64, url, caption string) error {
	_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: url},
		Caption: caption,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

// FetchFile resolves a Telegram file ID and downloads the file into path.
func (s *Telegram) FetchFile(ctx context.Context, fileID, path string) error {
	f, err := s.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return fmt.Errorf("error getting file from telegram api: %w", err)
	}

	return file.Download(ctx, s.bot.FileDownloadLink(f), path)
}

func inlineKeyboard(buttons []domain.Button) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         b.Text,
			CallbackData: b.Data,
			URL:          b.URL,
		}})
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
