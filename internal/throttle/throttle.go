// Package throttle tracks failed login attempts per email and enforces a
// time-boxed lockout. Five consecutive failures lock the email for five
// minutes; the lock is evaluated lazily at check time and the failure count
// only resets on a successful login.
package throttle

import (
	"context"
	"time"
)

const (
	// MaxFailures is the failure count at which the lockout engages.
	MaxFailures = 5

	// LockoutPeriod is how long an email stays locked after the count
	// crosses MaxFailures.
	LockoutPeriod = 5 * time.Minute
)

// Store records login attempt outcomes and answers lockout checks. Keys are
// expected to be lowercased, trimmed emails.
type Store interface {
	// Locked reports whether the email is currently locked out.
	Locked(ctx context.Context, email string) (bool, error)

	// RecordAttempt updates the failure counter. A success resets the
	// record; a failure increments the count and, the moment it reaches
	// exactly MaxFailures, starts the lockout window. Further failures do
	// not extend an active window.
	RecordAttempt(ctx context.Context, email string, success bool) error
}
