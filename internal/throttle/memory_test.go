package throttle

import (
	"context"
	"testing"
	"time"
)

func newTestMemoryStore(now *time.Time) *memoryStore {
	s := NewMemoryStore().(*memoryStore)
	s.now = func() time.Time { return *now }
	return s
}

func TestMemoryStoreLocksAfterFiveFailures(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)
	ctx := context.Background()

	for i := 0; i < MaxFailures-1; i++ {
		if err := s.RecordAttempt(ctx, "ana@example.com", false); err != nil {
			t.Fatalf("record attempt %d: %v", i, err)
		}
		locked, err := s.Locked(ctx, "ana@example.com")
		if err != nil {
			t.Fatalf("locked: %v", err)
		}
		if locked {
			t.Fatalf("locked after only %d failures", i+1)
		}
	}

	if err := s.RecordAttempt(ctx, "ana@example.com", false); err != nil {
		t.Fatalf("fifth failure: %v", err)
	}
	if locked, _ := s.Locked(ctx, "ana@example.com"); !locked {
		t.Fatalf("expected lock after the fifth failure")
	}
}

func TestMemoryStoreExtraFailuresDoNotExtendLock(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		s.RecordAttempt(ctx, "ana@example.com", false)
	}
	until := s.records["ana@example.com"].lockedUntil

	now = now.Add(time.Minute)
	s.RecordAttempt(ctx, "ana@example.com", false)
	if got := s.records["ana@example.com"].lockedUntil; !got.Equal(until) {
		t.Fatalf("sixth failure moved the expiry from %v to %v", until, got)
	}
}

func TestMemoryStoreLockExpiresLazily(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		s.RecordAttempt(ctx, "ana@example.com", false)
	}

	now = now.Add(LockoutPeriod - time.Second)
	if locked, _ := s.Locked(ctx, "ana@example.com"); !locked {
		t.Fatalf("expected lock to hold just before expiry")
	}

	now = now.Add(2 * time.Second)
	if locked, _ := s.Locked(ctx, "ana@example.com"); locked {
		t.Fatalf("expected lock to expire")
	}

	// The count survives expiry; only a success clears it.
	if s.records["ana@example.com"].count != MaxFailures {
		t.Fatalf("count reset by expiry alone")
	}
	s.RecordAttempt(ctx, "ana@example.com", true)
	if _, ok := s.records["ana@example.com"]; ok {
		t.Fatalf("success did not reset the record")
	}
}

func TestMemoryStoreSuccessResetsCount(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)
	ctx := context.Background()

	for i := 0; i < MaxFailures-1; i++ {
		s.RecordAttempt(ctx, "ana@example.com", false)
	}
	s.RecordAttempt(ctx, "ana@example.com", true)

	// Four more failures after the reset must not lock.
	for i := 0; i < MaxFailures-1; i++ {
		s.RecordAttempt(ctx, "ana@example.com", false)
	}
	if locked, _ := s.Locked(ctx, "ana@example.com"); locked {
		t.Fatalf("locked despite reset")
	}
}
