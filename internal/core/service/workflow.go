package service

import (
	"bangerbot/internal/core/domain"
	"bangerbot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LinkWorkflow turns a chat message carrying a video link into an audio file in cloud storage.
type LinkWorkflow struct {
	extractor  port.AudioExtractor
	tagger     port.Tagger
	storage    port.CloudStorage
	textSender port.TextSender
}

func NewLinkWorkflow(extractor port.AudioExtractor, tagger port.Tagger, storage port.CloudStorage,
	textSender port.TextSender) *LinkWorkflow {
	return &LinkWorkflow{extractor: extractor, tagger: tagger, storage: storage, textSender: textSender}
}

// Run drives one message through parsing, download and upload. The returned error is only set when the chat
// itself could not be written to; collaborator failures end up in the status message and the outcome.
func (w *LinkWorkflow) Run(ctx context.Context, message *domain.Message) (domain.Outcome, error) {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("username", message.Username).
		Logger()

	metadata := domain.ParseMetadata(message.Text)
	if metadata.URL == "" {
		l.Debug().Msg("no url in message")
		return domain.OutcomeIgnored, nil
	}

	l = l.With().Str("url", metadata.URL).Logger()
	l.Info().Msg("handling link")

	if !domain.IsRecognizedProvider(metadata.URL) {
		l.Info().Msg("unsupported provider")
		return w.reply(ctx, message, domain.TextUnsupportedProvider, domain.OutcomeUnsupported)
	}

	if !domain.IsDownloadable(metadata.URL) {
		l.Info().Msg("url is not a single video")
		return w.reply(ctx, message, domain.TextInvalidTarget, domain.OutcomeInvalidTarget)
	}

	statusID, err := w.textSender.SendMessageReply(ctx, message, domain.TextDownloadStarted)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return domain.OutcomeFailed, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	status := newStatusMessage(w.textSender, message.ChatID, statusID, domain.TextDownloadStarted)

	track, err := w.download(ctx, status, metadata)
	if err != nil {
		l.Error().Err(err).Msg("failed to download audio")
		return domain.OutcomeExtractionFailed, status.Edit(ctx, domain.TextDownloadFailed)
	}

	l = l.With().Str("title", track.DisplayTitle).Str("path", track.Path).Logger()

	err = w.upload(ctx, l, status, track, metadata)
	if err != nil {
		l.Error().Err(err).Msg("failed to upload audio")
		return domain.OutcomeUploadFailed, status.Edit(ctx, FailureText(err))
	}

	_, err = w.textSender.SendMessageReply(ctx, message, domain.UploadedText(track.DisplayTitle))
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return domain.OutcomeDone, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	l.Info().Msg("link handled")
	return domain.OutcomeDone, nil
}

func (w *LinkWorkflow) reply(ctx context.Context, message *domain.Message, text string,
	outcome domain.Outcome) (domain.Outcome, error) {
	_, err := w.textSender.SendMessageReply(ctx, message, text)
	if err != nil {
		return outcome, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return outcome, nil
}

func (w *LinkWorkflow) download(ctx context.Context, status *statusMessage,
	metadata domain.Metadata) (*domain.AudioTrack, error) {
	track, err := w.extractor.ExtractAudio(ctx, metadata.URL, func(p domain.Progress) {
		status.Progress(ctx, domain.DownloadProgressText(p))
	})
	if err != nil {
		return nil, err
	}

	err = w.tagger.Tag(track.Path, metadata, track.DisplayTitle)
	if err != nil {
		discardTrack(track)
		return nil, fmt.Errorf("%w: tagging: %w", domain.ErrExtractionFailed, err)
	}

	return track, nil
}

// upload always removes the extracted file, whatever the storage outcome.
func (w *LinkWorkflow) upload(ctx context.Context, l zerolog.Logger, status *statusMessage,
	track *domain.AudioTrack, metadata domain.Metadata) error {
	defer discardTrack(track)

	var folderID string
	if metadata.Folder != nil {
		l.Debug().Str("folder", *metadata.Folder).Msg("resolving destination folder")

		id, err := w.storage.EnsureFolder(ctx, *metadata.Folder)
		if err != nil {
			return err
		}
		folderID = id
	}

	title := track.DisplayTitle
	if metadata.Title != "" {
		title = metadata.Title
	}

	status.Progress(ctx, domain.UploadProgressText(0))

	return w.storage.Upload(ctx, domain.UploadRequest{
		Path:     track.Path,
		Title:    title,
		MimeType: track.MimeType,
		FolderID: folderID,
	}, func(percent int) {
		status.Progress(ctx, domain.UploadProgressText(percent))
	})
}
