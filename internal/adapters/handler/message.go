package handler

import (
	"bangerbot/internal/core/domain"
	"strings"

	"github.com/go-telegram/bot/models"
)

// toMessage maps a Telegram message to the domain message the workflows consume.
func toMessage(m *models.Message) *domain.Message {
	text := m.Text
	if text == "" {
		text = m.Caption
	}

	return &domain.Message{
		ID:         m.ID,
		ChatID:     m.Chat.ID,
		Username:   getUserNameOrFirstName(m.From),
		Text:       text,
		Attachment: toAttachment(m),
	}
}

func toAttachment(m *models.Message) *domain.Attachment {
	switch {
	case m.Audio != nil:
		title := m.Audio.FileName
		if title == "" {
			title = m.Audio.FileUniqueID + ".mp3"
		}
		return &domain.Attachment{
			FileID:   m.Audio.FileID,
			Title:    sanitizeFileName(title),
			MimeType: m.Audio.MimeType,
		}
	case m.Voice != nil:
		mimeType := m.Voice.MimeType
		if mimeType == "" {
			mimeType = "audio/ogg"
		}
		return &domain.Attachment{
			FileID:   m.Voice.FileID,
			Title:    sanitizeFileName(m.Voice.FileUniqueID + ".ogg"),
			MimeType: mimeType,
			Voice:    true,
		}
	default:
		return nil
	}
}

func toCallback(q *models.CallbackQuery) *domain.Callback {
	callback := &domain.Callback{
		ID:       q.ID,
		Username: getUserNameOrFirstName(&q.From),
		Data:     q.Data,
	}

	if q.Message.Message != nil {
		callback.ChatID = q.Message.Message.Chat.ID
		callback.MessageID = q.Message.Message.ID
	} else if q.Message.InaccessibleMessage != nil {
		callback.ChatID = q.Message.InaccessibleMessage.Chat.ID
		callback.MessageID = q.Message.InaccessibleMessage.MessageID
	}

	return callback
}

// sanitizeFileName keeps a user supplied file name from escaping the working directory.
func sanitizeFileName(name string) string {
	name = strings.NewReplacer("/", "_", `\`, "_", "\x00", "").Replace(name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "audio"
	}
	return name
}

func getUserNameOrFirstName(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
