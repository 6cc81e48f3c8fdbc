package handler

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

type allowlist struct {
	allowed  map[int64]bool
	rejected []int64
	answered []string
}

func (a *allowlist) IsAuthorized(_ context.Context, chatID int64) bool {
	return a.allowed[chatID]
}

func (a *allowlist) Reject(_ context.Context, chatID int64) {
	a.rejected = append(a.rejected, chatID)
}

func (a *allowlist) AnswerCallback(_ context.Context, callbackID string) error {
	a.answered = append(a.answered, callbackID)
	return nil
}

func callbackFrom(chatID int64) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:      "cb-1",
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: chatID}}},
	}}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name         string
		update       *models.Update
		wantNext     bool
		wantRejected []int64
		wantAnswered []string
	}{
		{
			name:     "allowed message",
			update:   makeUpdate("hi"),
			wantNext: true,
		},
		{
			name: "rejected message is warned",
			update: &models.Update{Message: &models.Message{
				Text: "hi",
				Chat: models.Chat{ID: 666},
			}},
			wantNext:     false,
			wantRejected: []int64{666},
		},
		{
			name:     "allowed callback",
			update:   callbackFrom(100),
			wantNext: true,
		},
		{
			name:         "rejected callback is answered without a warning",
			update:       callbackFrom(666),
			wantNext:     false,
			wantAnswered: []string{"cb-1"},
		},
		{
			name: "rejected callback on inaccessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID: "cb-1",
				Message: models.MaybeInaccessibleMessage{
					InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 666}},
				},
			}},
			wantNext:     false,
			wantAnswered: []string{"cb-1"},
		},
		{
			name:     "update without chat",
			update:   &models.Update{},
			wantNext: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := func(_ context.Context, _ *bot.Bot, _ *models.Update) { called = true }
			a := &allowlist{allowed: map[int64]bool{100: true}}

			Authorize(a, a)(next)(t.Context(), nil, tc.update)

			assert.Equal(t, tc.wantNext, called)
			assert.Equal(t, tc.wantRejected, a.rejected)
			assert.Equal(t, tc.wantAnswered, a.answered)
		})
	}
}
