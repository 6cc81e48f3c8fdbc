package port

import (
	"bangerbot/internal/core/domain"
	"context"
)

type TextSender interface {
	// SendMessageReply sends a reply to the given message, optionally with inline buttons, and returns the ID of
	// the sent message.
	SendMessageReply(ctx context.Context, message *domain.Message, text string, buttons ...domain.Button) (int, error)
	// EditMessage replaces the text of a message previously sent by the bot.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	// AnswerCallback acknowledges a button press so the client stops showing a loading indicator.
	AnswerCallback(ctx context.Context, callbackID string) error
}

type ImageSender interface {
	// SendImageURL sends an image by URL with a caption to the given chat.
	SendImageURL(ctx context.Context, chatID int64, url, caption string) error
}

type FileFetcher interface {
	// FetchFile downloads a file previously sent to the chat into path.
	FetchFile(ctx context.Context, fileID, path string) error
}
