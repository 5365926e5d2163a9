package cache

import (
	"context"
	"sync"
	"time"

	"askpilot/internal/model"
)

type memoryRecord struct {
	entries    []model.HistoryEntry
	lastActive time.Time
}

// MemoryHistoryStore keeps per-user history in process memory. It is the
// default backend when Redis is not configured. Safe for concurrent
// request handlers.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{records: make(map[string]memoryRecord)}
}

func (s *MemoryHistoryStore) Get(ctx context.Context, username string) ([]model.HistoryEntry, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[username]
	if !ok {
		return nil, time.Time{}, nil
	}
	entries := make([]model.HistoryEntry, len(rec.entries))
	copy(entries, rec.entries)
	return entries, rec.lastActive, nil
}

func (s *MemoryHistoryStore) Put(ctx context.Context, username string, entries []model.HistoryEntry, lastActive time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.HistoryEntry, len(entries))
	copy(stored, entries)
	s.records[username] = memoryRecord{entries: stored, lastActive: lastActive}
	return nil
}

func (s *MemoryHistoryStore) Clear(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, username)
	return nil
}
