package throttle

import (
	"context"
	"sync"
	"time"
)

type record struct {
	count       int
	lockedUntil time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

// NewMemoryStore builds an in-process attempt store for development and tests.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]*record), now: time.Now}
}

func (s *memoryStore) Locked(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[email]
	if !ok {
		return false, nil
	}
	return rec.count >= MaxFailures && s.now().Before(rec.lockedUntil), nil
}

func (s *memoryStore) RecordAttempt(_ context.Context, email string, success bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if success {
		delete(s.records, email)
		return nil
	}

	rec, ok := s.records[email]
	if !ok {
		rec = &record{}
		s.records[email] = rec
	}
	rec.count++
	if rec.count == MaxFailures {
		rec.lockedUntil = s.now().Add(LockoutPeriod)
	}
	return nil
}
