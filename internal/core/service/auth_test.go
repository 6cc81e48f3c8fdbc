package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthorizer(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		wantErr  bool
		expected []int64
	}{
		{
			name: "loads allowed chat IDs",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", []int64{1, 2, 3})
			},
			wantErr:  false,
			expected: []int64{1, 2, 3},
		},
		{
			name: "invalid type returns error",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", "not a slice")
			},
			wantErr: true,
		},
		{
			name:     "missing list is fine",
			setup:    func() {},
			wantErr:  false,
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper between tests
			viper.Reset()
			tt.setup()
			auth, err := NewAuthorizer(&mockTextSender{})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, auth)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, auth)
				assert.Equal(t, tt.expected, auth.allowlist)
			}
		})
	}
}

func TestChatAuthorizer_IsAuthorized(t *testing.T) {
	tests := []struct {
		name      string
		allowlist []int64
		chatID    int64
		want      bool
	}{
		{
			name:      "chatID is allowed",
			allowlist: []int64{123, 456},
			chatID:    123,
			want:      true,
		},
		{
			name:      "empty allowlist lets everyone in",
			allowlist: []int64{},
			chatID:    42,
			want:      true,
		},
		{
			name:      "chatID not allowed",
			allowlist: []int64{111, 222},
			chatID:    333,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{}
			a := &ChatAuthorizer{
				allowlist: tt.allowlist,
				sender:    mockSender,
			}

			got := a.IsAuthorized(context.Background(), tt.chatID)

			assert.Equal(t, tt.want, got)
			assert.Empty(t, mockSender.replies, "IsAuthorized should not send anything")
		})
	}
}

func TestChatAuthorizer_Reject(t *testing.T) {
	viper.Reset()
	viper.Set("telegram.admin_username", "adminuser")

	tests := []struct {
		name    string
		chatID  int64
		sendErr error
	}{
		{
			name:   "sends warning",
			chatID: 333,
		},
		{
			name:    "send failure is only logged",
			chatID:  888,
			sendErr: errors.New("send failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendErr: tt.sendErr}
			a := &ChatAuthorizer{allowlist: []int64{999}, sender: mockSender}

			a.Reject(context.Background(), tt.chatID)

			expected := fmt.Sprintf("You are not authorized to use this bot. "+
				"Please contact @adminuser with this ID to get access: %d", tt.chatID)
			assert.Equal(t, []string{expected}, mockSender.replies)
		})
	}
}
