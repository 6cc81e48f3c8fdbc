package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEditingFailed      = errors.New("failed to edit status message")

	// ErrExtractionFailed indicates the audio could not be downloaded or converted.
	ErrExtractionFailed = errors.New("audio extraction failed")
	// ErrUploadFailed indicates cloud storage rejected or aborted the upload.
	ErrUploadFailed = errors.New("upload failed")
	// ErrInvalidMetadata indicates the file title or mime type was unusable for the upload.
	ErrInvalidMetadata = errors.New("invalid file metadata")
	// ErrFileNotFound indicates the local file to upload does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFolderCreateFailed indicates the destination folder could not be found or created.
	ErrFolderCreateFailed = errors.New("folder creation failed")
	// ErrTrackNotFound indicates fingerprinting found no complete match.
	ErrTrackNotFound = errors.New("track not found")
	// ErrRemoveFileFailed indicates a staged file could not be cleaned up.
	ErrRemoveFileFailed = errors.New("failed to remove file")
	// ErrClientSecretNotFound indicates no OAuth client secret is available for bootstrap.
	ErrClientSecretNotFound = errors.New("client secret not found")

	ErrInvalidCallback   = errors.New("invalid callback payload")
	ErrSelectionNotFound = errors.New("file selection not found or expired")
)
