package service

import (
	"bangerbot/internal/core/domain"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// SelectionStore keeps pending file selections in memory until a button is pressed or
// they expire.
type SelectionStore struct {
	pending map[string]pendingSelection
	ttl     time.Duration
	mutex   sync.Mutex
}

type pendingSelection struct {
	selection domain.FileSelection
	expires   time.Time
}

func NewSelectionStore(ctx context.Context, ttl time.Duration) *SelectionStore {
	s := &SelectionStore{
		pending: make(map[string]pendingSelection),
		ttl:     ttl,
	}

	go s.ExpireSelections(ctx)

	return s
}

func (s *SelectionStore) Put(selection domain.FileSelection) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("error generating selection key: %w", err)
	}

	key := id.String()

	s.mutex.Lock()
	s.pending[key] = pendingSelection{selection: selection, expires: time.Now().Add(s.ttl)}
	s.mutex.Unlock()

	log.Debug().Str("key", key).Str("fileTitle", selection.FileTitle).Msg("stored pending selection")

	return key, nil
}

// Take returns the selection stored under key. A selection can only be taken once.
func (s *SelectionStore) Take(key string) (domain.FileSelection, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return domain.FileSelection{}, false
	}

	delete(s.pending, key)

	if time.Now().After(p.expires) {
		return domain.FileSelection{}, false
	}

	return p.selection, true
}

func (s *SelectionStore) ExpireSelections(ctx context.Context) {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.purge(now)
		case <-ctx.Done():
			log.Debug().Msg("stopping selection expiry")
			return
		}
	}
}

func (s *SelectionStore) purge(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, p := range s.pending {
		if now.After(p.expires) {
			delete(s.pending, key)
		}
	}

	log.Debug().Int("pending", len(s.pending)).Msg("purged expired selections")
}
