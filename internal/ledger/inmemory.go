package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryLedger struct {
	mu      sync.Mutex
	nextSeq int64
	entries []Entry
}

// NewInMemory creates a concurrency-safe in-memory ledger. A single mutex
// guards every compound operation, so the transfer pair is appended as one
// unit and balance reads cannot interleave with half a transfer.
func NewInMemory() Ledger {
	return &inMemoryLedger{nextSeq: 1}
}

func (l *inMemoryLedger) Record(_ context.Context, userID, amount int64, kind, description string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.append(userID, amount, kind, description, "", time.Now().UTC()), nil
}

func (l *inMemoryLedger) Withdraw(_ context.Context, userID, amount int64, description string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balanceLocked(userID) < amount {
		return Entry{}, ErrInsufficientBalance
	}
	return l.append(userID, -amount, KindWithdrawal, description, "", time.Now().UTC()), nil
}

func (l *inMemoryLedger) Transfer(_ context.Context, fromID, toID, amount int64, fromDesc, toDesc string) (TransferResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balanceLocked(fromID) < amount {
		return TransferResult{}, ErrInsufficientBalance
	}

	transferID := uuid.NewString()
	now := time.Now().UTC() // both legs share the instant; Seq breaks the tie
	debit := l.append(fromID, -amount, KindTransfer, fromDesc, transferID, now)
	credit := l.append(toID, amount, KindTransfer, toDesc, transferID, now)

	return TransferResult{
		TransferID:  transferID,
		Debit:       debit,
		Credit:      credit,
		FromBalance: l.balanceLocked(fromID),
		ToBalance:   l.balanceLocked(toID),
	}, nil
}

func (l *inMemoryLedger) Balance(_ context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(userID), nil
}

func (l *inMemoryLedger) Statement(_ context.Context, userID int64) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, StatementLimit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < StatementLimit; i-- {
		if l.entries[i].UserID == userID {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

func (l *inMemoryLedger) append(userID, amount int64, kind, description, transferID string, at time.Time) Entry {
	entry := Entry{
		Seq:         l.nextSeq,
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		TransferID:  transferID,
		CreatedAt:   at,
	}
	l.nextSeq++
	l.entries = append(l.entries, entry)
	return entry
}

func (l *inMemoryLedger) balanceLocked(userID int64) int64 {
	var total int64
	for _, e := range l.entries {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total
}
