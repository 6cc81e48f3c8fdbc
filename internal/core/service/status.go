package service

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// statusMessage is the single bot message a workflow keeps editing. Edits are
// serialized and repeated texts are skipped.
type statusMessage struct {
	sender    port.TextSender
	chatID    int64
	messageID int
	last      string
	mutex     sync.Mutex
}

func newStatusMessage(sender port.TextSender, chatID int64, messageID int, text string) *statusMessage {
	return &statusMessage{sender: sender, chatID: chatID, messageID: messageID, last: text}
}

func (s *statusMessage) Edit(ctx context.Context, text string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if text == s.last {
		return nil
	}

	err := s.sender.EditMessage(ctx, s.chatID, s.messageID, text)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEditingFailed, err)
	}

	s.last = text
	return nil
}

// Progress edits the message but only logs failures, a missed progress update is not worth aborting for.
func (s *statusMessage) Progress(ctx context.Context, text string) {
	if err := s.Edit(ctx, text); err != nil {
		log.Warn().Err(err).Int("messageId", s.messageID).Msg("failed to edit progress")
	}
}

// FailureText maps a collaborator error to the text shown to the user.
func FailureText(err error) string {
	switch {
	case errors.Is(err, domain.ErrFolderCreateFailed):
		return domain.TextFolderCreateFailed
	case errors.Is(err, domain.ErrInvalidMetadata):
		return domain.TextInvalidMetadata
	case errors.Is(err, domain.ErrFileNotFound):
		return domain.TextFileMissing
	case errors.Is(err, domain.ErrUploadFailed):
		return domain.TextUploadFailed
	case errors.Is(err, domain.ErrExtractionFailed):
		return domain.TextDownloadFailed
	case errors.Is(err, domain.ErrTrackNotFound):
		return domain.TextNotDetected
	default:
		return domain.TextGenericFailure
	}
}

// discardTrack removes an extracted track together with its private directory.
func discardTrack(track *domain.AudioTrack) {
	discard(track.Path)
	if track.Dir != "" {
		discardDir(track.Dir)
	}
}

// discardDir removes a staging directory and anything still in it.
func discardDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("could not clean up staging dir")
	}
}

// discard removes a staged file that may already be gone.
func discard(path string) {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up staged file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up staged file")
}
