package service

import (
	"bangerbot/internal/core/domain"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTextSender struct {
	mutex    sync.Mutex
	events   []string
	replies  []string
	buttons  [][]domain.Button
	edits    []string
	answered []string
	sendErr  error
	editErr  error
	nextID   int
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string,
	buttons ...domain.Button) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = append(m.events, "reply:"+text)
	m.replies = append(m.replies, text)
	m.buttons = append(m.buttons, buttons)
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.nextID++
	return m.nextID, nil
}

func (m *mockTextSender) EditMessage(_ context.Context, _ int64, _ int, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = append(m.events, "edit:"+text)
	m.edits = append(m.edits, text)
	return m.editErr
}

func (m *mockTextSender) AnswerCallback(_ context.Context, callbackID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = append(m.events, "answer:"+callbackID)
	m.answered = append(m.answered, callbackID)
	return nil
}

func (m *mockTextSender) lastEdit() string {
	if len(m.edits) == 0 {
		return ""
	}
	return m.edits[len(m.edits)-1]
}

type sentImage struct {
	chatID  int64
	url     string
	caption string
}

type mockImageSender struct {
	images []sentImage
	err    error
}

func (m *mockImageSender) SendImageURL(_ context.Context, chatID int64, url, caption string) error {
	m.images = append(m.images, sentImage{chatID: chatID, url: url, caption: caption})
	return m.err
}

type mockFetcher struct {
	paths []string
	err   error
}

func (m *mockFetcher) FetchFile(_ context.Context, _ string, path string) error {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(path, []byte("ID3"), 0o600)
}

type mockExtractor struct {
	dir      string
	progress []domain.Progress
	err      error
	calls    int
	track    *domain.AudioTrack
}

func (m *mockExtractor) ExtractAudio(_ context.Context, url string,
	progress func(domain.Progress)) (*domain.AudioTrack, error) {
	m.calls++
	for _, p := range m.progress {
		progress(p)
	}
	if m.err != nil {
		return nil, m.err
	}

	dir, err := os.MkdirTemp(m.dir, "ytdlp-*")
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "W2TE0DjdNqI.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o600); err != nil {
		return nil, err
	}

	m.track = &domain.AudioTrack{
		DisplayTitle: "Porter Robinson - Goodbye To A World",
		NativeID:     "W2TE0DjdNqI",
		Path:         path,
		Dir:          dir,
		MimeType:     "audio/mpeg",
	}
	return m.track, nil
}

type mockTagger struct {
	calls    int
	metadata domain.Metadata
	fallback string
	err      error
}

func (m *mockTagger) Tag(_ string, metadata domain.Metadata, fallbackTitle string) error {
	m.calls++
	m.metadata = metadata
	m.fallback = fallbackTitle
	return m.err
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) EnsureFolder(_ context.Context, name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Upload(_ context.Context, request domain.UploadRequest, progress func(percent int)) error {
	if progress != nil {
		progress(50)
		progress(50)
		progress(100)
	}
	args := m.Called(request)
	return args.Error(0)
}

type mockRecognizer struct {
	track *domain.RecognizedTrack
	err   error
	calls int
}

func (m *mockRecognizer) Identify(_ context.Context, path string) (*domain.RecognizedTrack, error) {
	m.calls++
	_ = os.Remove(path)
	return m.track, m.err
}

func requireGone(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
