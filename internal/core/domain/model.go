package domain

import (
	"path/filepath"
	"strconv"
)

// Message is an inbound chat message, reduced to what the workflows need.
type Message struct {
	ID         int
	ChatID     int64
	Username   string
	Text       string
	Attachment *Attachment
}

// Attachment describes an audio or voice file sent along with a message.
type Attachment struct {
	FileID   string
	Title    string
	MimeType string
	Voice    bool
}

// Callback is a button press on a message previously sent by the bot.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	Username  string
	Data      string
}

// Button is an inline keyboard button. Either Data or URL is set.
type Button struct {
	Text string
	Data string
	URL  string
}

// TagNumber is a numeric tag value. The zero value is the empty sentinel.
type TagNumber struct {
	value int
	set   bool
}

func NewTagNumber(n int) TagNumber {
	return TagNumber{value: n, set: true}
}

// ParseTagNumber coerces s to an integer, falling back to the empty sentinel.
func ParseTagNumber(s string) TagNumber {
	n, err := strconv.Atoi(s)
	if err != nil {
		return TagNumber{}
	}

	return NewTagNumber(n)
}

func (t TagNumber) Int() (int, bool) {
	return t.value, t.set
}

func (t TagNumber) IsEmpty() bool {
	return !t.set
}

func (t TagNumber) String() string {
	if !t.set {
		return ""
	}

	return strconv.Itoa(t.value)
}

// Metadata is the request parsed out of a chat message: one URL and optional tags.
type Metadata struct {
	URL    string
	Artist string
	Year   TagNumber
	Track  TagNumber
	Genre  string
	Album  string
	Title  string
	// Folder is nil when no destination folder was requested.
	Folder *string
}

// Action is the choice offered for an incoming audio file.
type Action string

const (
	ActionIdentify Action = "shazam"
	ActionUpload   Action = "gdrive"
)

// FileSelection is an audio attachment waiting for the user to pick an Action.
type FileSelection struct {
	Action    Action
	FileTitle string
	FileID    string
	MimeType  string
	ChatID    int64
}

// LocalPath is where the selected file is staged: a directory named after the
// selection key inside workDir, so equal file titles never collide.
func (f FileSelection) LocalPath(workDir, key string) string {
	return filepath.Join(workDir, key, f.FileTitle)
}

// Provider is the service a recognized track can be opened in.
type Provider struct {
	Caption string
	URI     string
}

// RecognizedTrack is a fingerprinting match. Build it with NewRecognizedTrack.
type RecognizedTrack struct {
	Title         string
	Subtitle      string
	CoverImageURL string
	FirstProvider Provider
}

// AudioTrack is an audio file extracted from a remote video. The file at Path exists
// until the caller removes it. When Dir is set it is the directory private to this
// track and the caller removes it as a whole.
type AudioTrack struct {
	DisplayTitle string
	NativeID     string
	Path         string
	Dir          string
	MimeType     string
}

// UploadRequest describes a local file to push to cloud storage.
type UploadRequest struct {
	Path     string
	Title    string
	MimeType string
	FolderID string
}

// Stage is the phase an extraction progress update refers to.
type Stage string

const (
	StageDownloading    Stage = "downloading"
	StagePostProcessing Stage = "post_processing"
	StageFinished       Stage = "finished"
)

type Progress struct {
	Stage   Stage
	Percent float64
}

// Outcome is the terminal state a workflow reached.
type Outcome string

const (
	OutcomeIgnored          Outcome = "ignored"
	OutcomeUnsupported      Outcome = "unsupported"
	OutcomeInvalidTarget    Outcome = "invalid_target"
	OutcomeExtractionFailed Outcome = "extraction_failed"
	OutcomeUploadFailed     Outcome = "upload_failed"
	OutcomeDone             Outcome = "done"
	OutcomeChoicePresented  Outcome = "choice_presented"
	OutcomeIdentified       Outcome = "identified"
	OutcomeNotDetected      Outcome = "not_detected"
	OutcomeUploaded         Outcome = "uploaded"
	OutcomeNotPermitted     Outcome = "not_permitted"
	OutcomeFailed           Outcome = "failed"
)
