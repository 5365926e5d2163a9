package app

import (
	"context"
	"time"

	"askpilot/internal/model"
)

// HistoryStore is the backend holding each user's capped history and
// its last-active instant. A zero lastActive means no record.
type HistoryStore interface {
	Get(ctx context.Context, username string) ([]model.HistoryEntry, time.Time, error)
	Put(ctx context.Context, username string, entries []model.HistoryEntry, lastActive time.Time) error
	Clear(ctx context.Context, username string) error
}

// HistoryService enforces the history lifecycle: at most `limit`
// entries per user, the whole history evicted after `ttl` of
// inactivity.
type HistoryService struct {
	store HistoryStore
	limit int
	ttl   time.Duration
	now   func() time.Time
}

func NewHistoryService(store HistoryStore, limit int, ttl time.Duration) *HistoryService {
	if limit <= 0 {
		limit = 3
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &HistoryService{
		store: store,
		limit: limit,
		ttl:   ttl,
		now:   time.Now,
	}
}

// IsExpired reports whether a history last touched at lastActive has
// outlived the idle limit. A zero instant never expires: there is
// nothing to evict.
func (s *HistoryService) IsExpired(lastActive time.Time) bool {
	if lastActive.IsZero() {
		return false
	}
	return s.now().Sub(lastActive) > s.ttl
}

// ExpireIfStale drops the user's entire history, timestamp included,
// when it has been idle past the limit.
func (s *HistoryService) ExpireIfStale(ctx context.Context, username string) error {
	_, lastActive, err := s.store.Get(ctx, username)
	if err != nil {
		return err
	}
	if s.IsExpired(lastActive) {
		return s.store.Clear(ctx, username)
	}
	return nil
}

// Get returns the user's current history in chronological order, after
// evicting it if stale.
func (s *HistoryService) Get(ctx context.Context, username string) ([]model.HistoryEntry, error) {
	if err := s.ExpireIfStale(ctx, username); err != nil {
		return nil, err
	}
	entries, _, err := s.store.Get(ctx, username)
	return entries, err
}

// InitIfAbsent creates an empty history record for the user at login.
func (s *HistoryService) InitIfAbsent(ctx context.Context, username string) error {
	_, lastActive, err := s.store.Get(ctx, username)
	if err != nil {
		return err
	}
	if !lastActive.IsZero() {
		return nil
	}
	return s.store.Put(ctx, username, []model.HistoryEntry{}, s.now())
}

// AppendAndTrim appends the entries, keeps only the most recent `limit`
// by insertion order, refreshes the last-active instant, and returns
// the stored list.
func (s *HistoryService) AppendAndTrim(ctx context.Context, username string, entries ...model.HistoryEntry) ([]model.HistoryEntry, error) {
	current, _, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	current = append(current, entries...)
	if len(current) > s.limit {
		current = current[len(current)-s.limit:]
	}
	if err := s.store.Put(ctx, username, current, s.now()); err != nil {
		return nil, err
	}
	return current, nil
}
