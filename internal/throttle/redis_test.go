package throttle

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreLocksAfterFiveFailures(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures-1; i++ {
		if err := s.RecordAttempt(ctx, "ana@example.com", false); err != nil {
			t.Fatalf("record attempt %d: %v", i, err)
		}
	}
	if locked, err := s.Locked(ctx, "ana@example.com"); err != nil || locked {
		t.Fatalf("locked=%v err=%v after four failures", locked, err)
	}

	if err := s.RecordAttempt(ctx, "ana@example.com", false); err != nil {
		t.Fatalf("fifth failure: %v", err)
	}
	if locked, err := s.Locked(ctx, "ana@example.com"); err != nil || !locked {
		t.Fatalf("locked=%v err=%v after the fifth failure", locked, err)
	}
}

func TestRedisStoreLockExpires(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		if err := s.RecordAttempt(ctx, "ana@example.com", false); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	mr.FastForward(LockoutPeriod + time.Second)

	if locked, err := s.Locked(ctx, "ana@example.com"); err != nil || locked {
		t.Fatalf("locked=%v err=%v after the window elapsed", locked, err)
	}

	// The counter outlives the lock until a success clears it.
	if count, err := s.client.Get(ctx, failKeyPrefix+"ana@example.com").Int64(); err != nil || count != MaxFailures {
		t.Fatalf("count=%d err=%v, expected the counter to survive expiry", count, err)
	}

	if err := s.RecordAttempt(ctx, "ana@example.com", true); err != nil {
		t.Fatalf("record success: %v", err)
	}
	if mr.Exists(failKeyPrefix + "ana@example.com") {
		t.Fatalf("success did not clear the counter")
	}
}

func TestRedisStoreSuccessResets(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		s.RecordAttempt(ctx, "ana@example.com", false)
	}
	if err := s.RecordAttempt(ctx, "ana@example.com", true); err != nil {
		t.Fatalf("record success: %v", err)
	}
	if locked, err := s.Locked(ctx, "ana@example.com"); err != nil || locked {
		t.Fatalf("locked=%v err=%v after reset", locked, err)
	}
}
