package service

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ActionRouter offers a choice for incoming audio files and carries out the chosen action once a button is
// pressed.
type ActionRouter struct {
	selections  port.SelectionStore
	fetcher     port.FileFetcher
	recognizer  port.Recognizer
	storage     port.CloudStorage
	textSender  port.TextSender
	imageSender port.ImageSender
	workDir     string
}

func NewActionRouter(selections port.SelectionStore, fetcher port.FileFetcher, recognizer port.Recognizer,
	storage port.CloudStorage, textSender port.TextSender, imageSender port.ImageSender,
	workDir string) *ActionRouter {
	return &ActionRouter{
		selections:  selections,
		fetcher:     fetcher,
		recognizer:  recognizer,
		storage:     storage,
		textSender:  textSender,
		imageSender: imageSender,
		workDir:     workDir,
	}
}

// Present replies to an audio or voice message with the identify and upload buttons.
func (r *ActionRouter) Present(ctx context.Context, message *domain.Message) (domain.Outcome, error) {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Logger()

	attachment := message.Attachment
	if attachment == nil {
		l.Debug().Msg("message has no audio attachment")
		return domain.OutcomeIgnored, nil
	}

	selection := domain.FileSelection{
		FileTitle: attachment.Title,
		FileID:    attachment.FileID,
		MimeType:  attachment.MimeType,
		ChatID:    message.ChatID,
	}

	key, err := r.selections.Put(selection)
	if err != nil {
		l.Error().Err(err).Msg("failed to store selection")
		return domain.OutcomeFailed, err
	}

	identify, upload := selection, selection
	identify.Action = domain.ActionIdentify
	upload.Action = domain.ActionUpload

	_, err = r.textSender.SendMessageReply(ctx, message, domain.TextChooseAction,
		domain.Button{Text: domain.TextIdentifyButton, Data: domain.EncodeCallback(identify.Action, key)},
		domain.Button{Text: domain.TextUploadButton, Data: domain.EncodeCallback(upload.Action, key)},
	)
	if err != nil {
		r.selections.Take(key)
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return domain.OutcomeFailed, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	l.Info().Str("fileTitle", attachment.Title).Msg("presented file actions")
	return domain.OutcomeChoicePresented, nil
}

// Resolve handles a press on one of the buttons sent by Present. The callback is answered before anything else.
func (r *ActionRouter) Resolve(ctx context.Context, callback *domain.Callback) (domain.Outcome, error) {
	l := log.With().
		Str("callbackId", callback.ID).
		Int("messageId", callback.MessageID).
		Int64("chatId", callback.ChatID).
		Logger()

	err := r.textSender.AnswerCallback(ctx, callback.ID)
	if err != nil {
		l.Warn().Err(err).Msg("failed to answer callback")
	}

	status := newStatusMessage(r.textSender, callback.ChatID, callback.MessageID, domain.TextChooseAction)

	action, key, err := domain.DecodeCallback(callback.Data)
	if err != nil {
		l.Warn().Err(err).Msg("undecodable callback")
		return domain.OutcomeNotPermitted, status.Edit(ctx, domain.TextNotPermitted)
	}

	l = l.With().Str("action", string(action)).Logger()

	if action != domain.ActionIdentify && action != domain.ActionUpload {
		l.Warn().Msg("unknown action")
		return domain.OutcomeNotPermitted, status.Edit(ctx, domain.TextNotPermitted)
	}

	selection, ok := r.selections.Take(key)
	if !ok || selection.ChatID != callback.ChatID {
		l.Warn().Err(domain.ErrSelectionNotFound).Send()
		return domain.OutcomeNotPermitted, status.Edit(ctx, domain.TextNotPermitted)
	}
	selection.Action = action

	path := selection.LocalPath(r.workDir, key)
	l = l.With().Str("path", path).Logger()

	stagingDir := filepath.Dir(path)
	defer discardDir(stagingDir)

	err = os.MkdirAll(stagingDir, 0o755)
	if err != nil {
		l.Error().Err(err).Msg("failed to create staging dir")
		return domain.OutcomeFailed, status.Edit(ctx, domain.TextGenericFailure)
	}

	err = r.fetcher.FetchFile(ctx, selection.FileID, path)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch file")
		return domain.OutcomeFailed, status.Edit(ctx, domain.TextGenericFailure)
	}

	switch selection.Action {
	case domain.ActionIdentify:
		return r.identify(ctx, l, status, selection, path)
	default:
		return r.upload(ctx, l, status, selection, path)
	}
}

func (r *ActionRouter) identify(ctx context.Context, l zerolog.Logger, status *statusMessage,
	selection domain.FileSelection, path string) (domain.Outcome, error) {
	status.Progress(ctx, domain.TextIdentifying)

	track, err := r.recognizer.Identify(ctx, path)
	if errors.Is(err, domain.ErrTrackNotFound) {
		l.Info().Err(err).Msg("no match")
		return domain.OutcomeNotDetected, status.Edit(ctx, domain.TextNotDetected)
	}
	if err != nil {
		l.Error().Err(err).Msg("failed to identify file")
		return domain.OutcomeFailed, status.Edit(ctx, domain.TextGenericFailure)
	}

	l.Info().Str("title", track.Title).Str("artist", track.Subtitle).Msg("identified file")

	err = status.Edit(ctx, domain.TextIdentified)
	if err != nil {
		return domain.OutcomeIdentified, err
	}

	err = r.imageSender.SendImageURL(ctx, selection.ChatID, track.CoverImageURL, track.Caption())
	if err != nil {
		l.Error().Err(err).Msg("failed to send cover art")
		return domain.OutcomeIdentified, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return domain.OutcomeIdentified, nil
}

func (r *ActionRouter) upload(ctx context.Context, l zerolog.Logger, status *statusMessage,
	selection domain.FileSelection, path string) (domain.Outcome, error) {
	defer discard(path)

	status.Progress(ctx, domain.TextUploadingFile)

	err := r.storage.Upload(ctx, domain.UploadRequest{
		Path:     path,
		Title:    selection.FileTitle,
		MimeType: selection.MimeType,
	}, nil)
	if err != nil {
		l.Error().Err(err).Msg("failed to upload file")
		return domain.OutcomeUploadFailed, status.Edit(ctx, FailureText(err))
	}

	l.Info().Msg("uploaded file")
	return domain.OutcomeUploaded, status.Edit(ctx, domain.TextFileUploaded)
}
