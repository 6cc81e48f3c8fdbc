package domain

import (
	"fmt"
	"strings"
)

const callbackSeparator = ":"

// EncodeCallback renders the button payload for action on the stored selection key.
// Telegram limits payloads to 64 bytes, so the file details stay server-side.
func EncodeCallback(action Action, key string) string {
	return string(action) + callbackSeparator + key
}

// DecodeCallback splits a button payload. The action is returned as-is: callers must
// handle tags other than ActionIdentify and ActionUpload.
func DecodeCallback(data string) (Action, string, error) {
	action, key, ok := strings.Cut(data, callbackSeparator)
	if !ok || action == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	return Action(action), key, nil
}
