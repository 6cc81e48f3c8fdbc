package storage

import (
	"bangerbot/internal/core/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// TokenStore loads the OAuth client secrets and the user token from disk, and writes the
// token back whenever it gets refreshed.
type TokenStore struct {
	secretsPath string
	tokenPath   string
}

func NewTokenStore(secretsPath, tokenPath string) *TokenStore {
	return &TokenStore{secretsPath: secretsPath, tokenPath: tokenPath}
}

// Config reads the client secrets file downloaded from the Google Cloud console.
func (s *TokenStore) Config() (*oauth2.Config, error) {
	b, err := os.ReadFile(s.secretsPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrClientSecretNotFound, s.secretsPath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading client secrets: %w", err)
	}

	config, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("error parsing client secrets: %w", err)
	}

	return config, nil
}

// TokenSource returns a token source for the stored token. Refreshed tokens are persisted.
func (s *TokenStore) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	config, err := s.Config()
	if err != nil {
		return nil, err
	}

	token, err := s.load()
	if err != nil {
		return nil, err
	}

	return &savingTokenSource{
		base:  oauth2.ReuseTokenSource(token, config.TokenSource(ctx, token)),
		store: s,
		last:  token.AccessToken,
	}, nil
}

func (s *TokenStore) load() (*oauth2.Token, error) {
	b, err := os.ReadFile(s.tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no token at %s, run the auth command first: %w", s.tokenPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		return nil, fmt.Errorf("error unmarshalling token: %w", err)
	}

	return &token, nil
}

func (s *TokenStore) save(token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("error marshalling token: %w", err)
	}

	err = os.WriteFile(s.tokenPath, b, 0o600)
	if err != nil {
		return fmt.Errorf("error writing token: %w", err)
	}

	log.Debug().Str("path", s.tokenPath).Time("expiry", token.Expiry).Msg("saved token")

	return nil
}

// Authorize runs the installed-app flow: it serves the OAuth redirect on localhost:port,
// hands the consent URL to prompt and stores the token obtained from the returned code.
func (s *TokenStore) Authorize(ctx context.Context, port int, prompt func(url string)) error {
	config, err := s.Config()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("error listening for oauth redirect: %w", err)
	}

	config.RedirectURL = fmt.Sprintf("http://localhost:%d/", listener.Addr().(*net.TCPAddr).Port)

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("error generating oauth state: %w", err)
	}
	state := id.String()

	codes := make(chan string, 1)
	srv := &http.Server{
		Handler:           redirectHandler(state, codes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("oauth redirect server failed")
		}
	}()
	defer srv.Close()

	prompt(config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	var code string
	select {
	case code = <-codes:
	case <-ctx.Done():
		return ctx.Err()
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging auth code: %w", err)
	}

	return s.save(token)
}

func redirectHandler(state string, codes chan<- string) http.Handler {
	var once sync.Once

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		if code == "" {
			http.Error(w, "missing code: "+query.Get("error"), http.StatusBadRequest)
			return
		}

		once.Do(func() { codes <- code })

		_, _ = w.Write([]byte("Authorization complete, you can close this window."))
	})
}

// savingTokenSource writes the token to the store every time the access token changes.
// Concurrent refreshes in separate processes are not coordinated.
type savingTokenSource struct {
	base  oauth2.TokenSource
	store *TokenStore
	last  string
	mutex sync.Mutex
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token.AccessToken != s.last {
		if err := s.store.save(token); err != nil {
			log.Warn().Err(err).Msg("failed to persist refreshed token")
		}
		s.last = token.AccessToken
	}

	return token, nil
}
