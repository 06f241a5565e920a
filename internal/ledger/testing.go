package ledger

import "context"

// SeedBalance is a test helper that credits an opening balance when using the
// in-memory ledger.
func SeedBalance(l Ledger, userID, amount int64) {
	if mem, ok := l.(*inMemoryLedger); ok {
		_, _ = mem.Record(context.Background(), userID, amount, KindDeposit, "opening balance")
	}
}
