package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestInMemoryBalanceIsSumOfEntries(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	l.Record(ctx, 1, 10_000, KindDeposit, "")
	l.Record(ctx, 1, 2_500, KindDeposit, "")
	if _, err := l.Withdraw(ctx, 1, 500, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	l.Record(ctx, 2, 99_999, KindDeposit, "")

	balance, err := l.Balance(ctx, 1)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 12_000 {
		t.Fatalf("expected balance 12000, got %d", balance)
	}
}

func TestInMemoryBalanceUnknownUserIsZero(t *testing.T) {
	l := NewInMemory()
	balance, err := l.Balance(context.Background(), 42)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected 0 for unknown user, got %d", balance)
	}
}

func TestInMemoryWithdrawInsufficientLeavesNoEntry(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, 1, 1_000)

	if _, err := l.Withdraw(ctx, 1, 1_001, ""); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	stmt, err := l.Statement(ctx, 1)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if len(stmt) != 1 {
		t.Fatalf("rejected withdrawal left an entry: %+v", stmt)
	}
}

func TestInMemoryTransferLinksBothLegs(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, 1, 5_000)

	res, err := l.Transfer(ctx, 1, 2, 1_500, "To Bia", "From Ana")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if res.FromBalance != 3_500 || res.ToBalance != 1_500 {
		t.Fatalf("unexpected balances: %+v", res)
	}
	if res.Debit.Amount != -1_500 || res.Credit.Amount != 1_500 {
		t.Fatalf("legs are not mirrored: %+v", res)
	}
	if res.Debit.TransferID == "" || res.Debit.TransferID != res.Credit.TransferID {
		t.Fatalf("legs are not linked: %q vs %q", res.Debit.TransferID, res.Credit.TransferID)
	}
	if !res.Debit.CreatedAt.Equal(res.Credit.CreatedAt) {
		t.Fatalf("legs have different timestamps")
	}
	if res.Debit.Kind != KindTransfer || res.Credit.Kind != KindTransfer {
		t.Fatalf("legs have wrong kinds: %+v", res)
	}
	if res.Debit.Description != "To Bia" || res.Credit.Description != "From Ana" {
		t.Fatalf("unexpected descriptions: %+v", res)
	}
}

func TestInMemoryTransferInsufficientLeavesNoLegs(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, 1, 100)

	if _, err := l.Transfer(ctx, 1, 2, 101, "", ""); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if b, _ := l.Balance(ctx, 2); b != 0 {
		t.Fatalf("recipient credited by a failed transfer: %d", b)
	}
	stmt, _ := l.Statement(ctx, 2)
	if len(stmt) != 0 {
		t.Fatalf("failed transfer left entries on the recipient: %+v", stmt)
	}
}

func TestInMemoryStatementCapsAtTenNewestFirst(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	for i := int64(1); i <= 13; i++ {
		l.Record(ctx, 1, i, KindDeposit, fmt.Sprintf("dep %d", i))
	}
	l.Record(ctx, 2, 999, KindDeposit, "other user")

	stmt, err := l.Statement(ctx, 1)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if len(stmt) != StatementLimit {
		t.Fatalf("expected %d entries, got %d", StatementLimit, len(stmt))
	}
	// Newest insertion first: deposits 13 down to 4.
	for i, e := range stmt {
		if want := int64(13 - i); e.Amount != want {
			t.Fatalf("entry %d: expected amount %d, got %d", i, want, e.Amount)
		}
	}
}

func TestInMemoryStatementOrdersTransferLegsByInsertion(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, 1, 1_000)

	// A self-transfer puts both legs, sharing one timestamp, on one user.
	res, err := l.Transfer(ctx, 1, 1, 200, "To Ana", "From Ana")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	stmt, _ := l.Statement(ctx, 1)
	if len(stmt) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(stmt))
	}
	if stmt[0].Seq != res.Credit.Seq || stmt[1].Seq != res.Debit.Seq {
		t.Fatalf("tie not broken by insertion order: %+v", stmt)
	}
	if b, _ := l.Balance(ctx, 1); b != 1_000 {
		t.Fatalf("self transfer changed the balance: %d", b)
	}
}

func TestInMemoryConcurrentTransfersConserveTotal(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, 1, 100_000)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Transfer(ctx, 1, 2, 500, "", ""); err != nil {
				t.Errorf("transfer failed: %v", err)
			}
		}()
	}
	wg.Wait()

	from, _ := l.Balance(ctx, 1)
	to, _ := l.Balance(ctx, 2)
	if from+to != 100_000 {
		t.Fatalf("ledger not balanced after concurrency, total=%d", from+to)
	}
	if to != workers*500 {
		t.Fatalf("expected recipient balance %d, got %d", workers*500, to)
	}
}
