package service

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, chatID int64) bool
	Reject(ctx context.Context, chatID int64)
}

// ChatAuthorizer restricts the bot to an allowlist of chats. An empty allowlist lets every chat through.
type ChatAuthorizer struct {
	allowlist []int64
	sender    port.TextSender
}

func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	if list == nil {
		list = []int64{}
	}

	return &ChatAuthorizer{
		allowlist: list,
		sender:    sender,
	}, nil
}

const forbidden = "You are not authorized to use this bot. Please contact @%s with this ID to get access: %d"

func (a *ChatAuthorizer) IsAuthorized(_ context.Context, chatID int64) bool {
	if len(a.allowlist) == 0 {
		return true
	}

	for _, id := range a.allowlist {
		if id == chatID {
			return true
		}
	}

	return false
}

// Reject replies to the chat with the ID an admin needs to allow it.
func (a *ChatAuthorizer) Reject(ctx context.Context, chatID int64) {
	_, err := a.sender.SendMessageReply(ctx,
		&domain.Message{ChatID: chatID},
		fmt.Sprintf(forbidden, viper.GetString("telegram.admin_username"), chatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}
}
