package draftstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ergasia-marketplace/internal/domain"
)

// MemoryStore is the single instance fallback used when Redis is not
// configured. Expired drafts are hidden by Get and removed by Sweep.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (s *MemoryStore) Get(_ context.Context, userID, id string) (*domain.JobDraft, error) {
	s.mu.Lock()
	e, ok := s.entries[draftKey(userID, id)]
	s.mu.Unlock()
	if !ok || s.expired(e) {
		return nil, domain.ErrNotFound
	}
	var d domain.JobDraft
	if err := json.Unmarshal(e.raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save stores a serialised copy so later changes by the caller do not leak in.
func (s *MemoryStore) Save(_ context.Context, d *domain.JobDraft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	e := memoryEntry{raw: raw}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[draftKey(d.UserID, d.ID)] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	delete(s.entries, draftKey(userID, id))
	s.mu.Unlock()
	return nil
}

// Sweep removes expired drafts and reports how many were dropped.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if s.expired(e) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

var _ domain.DraftStore = (*MemoryStore)(nil)
