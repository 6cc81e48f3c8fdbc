package recognizer

import (
	"bangerbot/internal/core/domain"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConverter struct {
	sample []byte
	err    error
}

func (m *mockConverter) Sample(_ context.Context, _ string) ([]byte, error) {
	return m.sample, m.err
}

const matchResponse = `{
	"matches": [{"id": "1"}],
	"track": {
		"title": "Goodbye To A World",
		"subtitle": "Porter Robinson",
		"images": {"coverart": "https://img/cover.jpg", "coverarthq": "https://img/cover-hq.jpg"},
		"hub": {"providers": [{"caption": "Open in Spotify", "actions": [{"uri": "spotify:search:goodbye"}]}]}
	}
}`

func stagedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o600))
	return path
}

func TestShazam_Identify(t *testing.T) {
	tests := []struct {
		name           string
		responseBody   string
		responseStatus int
		want           *domain.RecognizedTrack
		wantErr        error
	}{
		{
			name:           "match",
			responseBody:   matchResponse,
			responseStatus: http.StatusOK,
			want: &domain.RecognizedTrack{
				Title:         "Goodbye To A World",
				Subtitle:      "Porter Robinson",
				CoverImageURL: "https://img/cover-hq.jpg",
				FirstProvider: domain.Provider{Caption: "Open in Spotify", URI: "spotify:search:goodbye"},
			},
		},
		{
			name:           "no match",
			responseBody:   `{"matches": [], "tagid": "abc"}`,
			responseStatus: http.StatusOK,
			wantErr:        domain.ErrTrackNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))
				assert.Equal(t, "shazam.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pcm")), string(body))

				w.WriteHeader(tc.responseStatus)
				_, err = w.Write([]byte(tc.responseBody))
				assert.NoError(t, err)
			}))
			defer srv.Close()

			path := stagedFile(t)
			s := NewShazam(&mockConverter{sample: []byte("pcm")}, srv.URL, "shazam.p.rapidapi.com", "secret")

			got, err := s.Identify(t.Context(), path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}

			_, statErr := os.Stat(path)
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestShazam_IdentifyFailures(t *testing.T) {
	tests := []struct {
		name           string
		converter      *mockConverter
		responseBody   string
		responseStatus int
	}{
		{
			name:           "api error",
			converter:      &mockConverter{sample: []byte("pcm")},
			responseBody:   "invalid",
			responseStatus: http.StatusForbidden,
		},
		{
			name:           "malformed JSON",
			converter:      &mockConverter{sample: []byte("pcm")},
			responseBody:   "{not_json}",
			responseStatus: http.StatusOK,
		},
		{
			name:           "sampling fails",
			converter:      &mockConverter{err: errors.New("invalid data found when processing input")},
			responseBody:   matchResponse,
			responseStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.responseStatus)
				_, err := w.Write([]byte(tc.responseBody))
				assert.NoError(t, err)
			}))
			defer srv.Close()

			path := stagedFile(t)
			s := NewShazam(tc.converter, srv.URL, "host", "key")

			_, err := s.Identify(t.Context(), path)
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrTrackNotFound)

			_, statErr := os.Stat(path)
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestShazam_IdentifyMissingFile(t *testing.T) {
	s := NewShazam(&mockConverter{sample: []byte("pcm")}, "http://127.0.0.1:0", "host", "key")

	_, err := s.Identify(t.Context(), filepath.Join(t.TempDir(), "gone.ogg"))
	require.ErrorIs(t, err, domain.ErrRemoveFileFailed)
}
