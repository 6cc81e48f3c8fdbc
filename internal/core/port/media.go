package port

import (
	"bangerbot/internal/core/domain"
	"context"
)

type AudioExtractor interface {
	// ExtractAudio downloads the video at url as an audio file, reporting progress along the way. Failures wrap
	// domain.ErrExtractionFailed.
	ExtractAudio(ctx context.Context, url string, progress func(domain.Progress)) (*domain.AudioTrack, error)
}

type Tagger interface {
	// Tag writes metadata tags onto the audio file at path. fallbackTitle is used when no title tag was given.
	Tag(path string, metadata domain.Metadata, fallbackTitle string) error
}

type CloudStorage interface {
	// EnsureFolder returns the ID of the folder with the given name, creating it if absent. Failures wrap
	// domain.ErrFolderCreateFailed.
	EnsureFolder(ctx context.Context, name string) (string, error)
	// Upload pushes a local file and removes it once the upload succeeded. Failures wrap domain.ErrUploadFailed,
	// domain.ErrFileNotFound or domain.ErrInvalidMetadata.
	Upload(ctx context.Context, request domain.UploadRequest, progress func(percent int)) error
}

type Recognizer interface {
	// Identify fingerprints the audio file at path. The file is removed regardless of the outcome. Failures wrap
	// domain.ErrTrackNotFound or domain.ErrRemoveFileFailed.
	Identify(ctx context.Context, path string) (*domain.RecognizedTrack, error)
}

type SelectionStore interface {
	// Put keeps a pending file selection and returns the key to reference it by.
	Put(selection domain.FileSelection) (string, error)
	// Take returns the selection for key and forgets it.
	Take(key string) (domain.FileSelection, bool)
}
