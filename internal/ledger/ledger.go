// Package ledger is the append-only transaction log. Balances and statements
// are always derived from the entries; no balance is stored anywhere else.
package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrInsufficientBalance occurs when a debit would take an account below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Entry kinds.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
	KindTransfer   = "transfer"
)

// StatementLimit bounds the number of entries a statement returns.
const StatementLimit = 10

// Entry is one immutable ledger row. Amount is in minor currency units;
// positive amounts are credits, negative are debits. Seq reflects insertion
// order and breaks timestamp ties between the two legs of a transfer.
type Entry struct {
	Seq         int64
	UserID      int64
	Amount      int64
	Kind        string
	Description string
	TransferID  string
	CreatedAt   time.Time
}

// TransferResult captures the outcome of an atomic transfer pair.
type TransferResult struct {
	TransferID  string
	Debit       Entry
	Credit      Entry
	FromBalance int64
	ToBalance   int64
}

// Ledger defines the contract implemented by ledger backends.
type Ledger interface {
	// Record appends one entry unconditionally. Callers validate amounts.
	Record(ctx context.Context, userID, amount int64, kind, description string) (Entry, error)

	// Withdraw appends a debit only if the user's balance covers it; the
	// check and the append are atomic.
	Withdraw(ctx context.Context, userID, amount int64, description string) (Entry, error)

	// Transfer appends a linked debit/credit pair atomically. Either both
	// legs become visible or neither does, and a concurrent balance read
	// never observes only one of them.
	Transfer(ctx context.Context, fromID, toID, amount int64, fromDesc, toDesc string) (TransferResult, error)

	// Balance sums the user's entries. Unknown users have balance zero.
	Balance(ctx context.Context, userID int64) (int64, error)

	// Statement returns up to StatementLimit entries for the user, most
	// recently inserted first.
	Statement(ctx context.Context, userID int64) ([]Entry, error)
}
