package history

import (
	"context"
	"sync"

	"ctlpay/internal/models"
)

// MemoryStore is the default in-process store. Entries vanish on restart,
// matching the ephemeral nature of the on-screen recap.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Push(ctx context.Context, entry models.HistoryEntry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]models.HistoryEntry{entry}, s.entries...)
	if limit > 0 && len(s.entries) > limit {
		s.entries = s.entries[:limit]
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}
