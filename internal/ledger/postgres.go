package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists entries in PostgreSQL. Entry sequence numbers come
// from the BIGSERIAL primary key, so insertion order is the tie-breaker for
// same-instant transfer legs.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

const insertEntry = `INSERT INTO entries (user_id, amount, kind, description, transfer_id, created_at)
    VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

// Record appends one entry unconditionally.
func (l *PostgresLedger) Record(ctx context.Context, userID, amount int64, kind, description string) (Entry, error) {
	entry := Entry{
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := l.db.QueryRow(ctx, insertEntry,
		entry.UserID, entry.Amount, entry.Kind, entry.Description, nil, entry.CreatedAt).Scan(&entry.Seq); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Withdraw debits the user inside a transaction that locks their row, so the
// funds check and the append cannot race with a concurrent debit.
func (l *PostgresLedger) Withdraw(ctx context.Context, userID, amount int64, description string) (Entry, error) {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := lockUser(ctx, tx, userID); err != nil {
		return Entry{}, err
	}
	balance, err := balanceForUser(ctx, tx, userID)
	if err != nil {
		return Entry{}, err
	}
	if balance < amount {
		return Entry{}, ErrInsufficientBalance
	}

	entry := Entry{
		UserID:      userID,
		Amount:      -amount,
		Kind:        KindWithdrawal,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.QueryRow(ctx, insertEntry,
		entry.UserID, entry.Amount, entry.Kind, entry.Description, nil, entry.CreatedAt).Scan(&entry.Seq); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Transfer appends the debit/credit pair in one transaction. The sender's
// user row is locked for the funds check, and both legs share a transfer id
// and timestamp.
func (l *PostgresLedger) Transfer(ctx context.Context, fromID, toID, amount int64, fromDesc, toDesc string) (TransferResult, error) {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransferResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := lockUser(ctx, tx, fromID); err != nil {
		return TransferResult{}, err
	}
	fromBalance, err := balanceForUser(ctx, tx, fromID)
	if err != nil {
		return TransferResult{}, err
	}
	if fromBalance < amount {
		return TransferResult{}, ErrInsufficientBalance
	}

	transferID := uuid.New()
	now := time.Now().UTC()

	debit := Entry{UserID: fromID, Amount: -amount, Kind: KindTransfer, Description: fromDesc, TransferID: transferID.String(), CreatedAt: now}
	if err := tx.QueryRow(ctx, insertEntry,
		debit.UserID, debit.Amount, debit.Kind, debit.Description, transferID, now).Scan(&debit.Seq); err != nil {
		return TransferResult{}, err
	}

	credit := Entry{UserID: toID, Amount: amount, Kind: KindTransfer, Description: toDesc, TransferID: transferID.String(), CreatedAt: now}
	if err := tx.QueryRow(ctx, insertEntry,
		credit.UserID, credit.Amount, credit.Kind, credit.Description, transferID, now).Scan(&credit.Seq); err != nil {
		return TransferResult{}, err
	}

	toBalance, err := balanceForUser(ctx, tx, toID)
	if err != nil {
		return TransferResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		TransferID:  transferID.String(),
		Debit:       debit,
		Credit:      credit,
		FromBalance: fromBalance - amount,
		ToBalance:   toBalance,
	}, nil
}

// Balance sums the user's entries; unknown users sum to zero.
func (l *PostgresLedger) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM entries WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Statement returns the user's most recent entries, newest insertion first.
func (l *PostgresLedger) Statement(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := l.db.Query(ctx, `SELECT id, user_id, amount, kind, description, COALESCE(transfer_id::text, ''), created_at
        FROM entries WHERE user_id = $1 ORDER BY id DESC LIMIT $2`, userID, StatementLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, StatementLimit)
	for rows.Next() {
		var (
			entry     Entry
			createdAt time.Time
		)
		if err := rows.Scan(&entry.Seq, &entry.UserID, &entry.Amount, &entry.Kind, &entry.Description, &entry.TransferID, &createdAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = createdAt.UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func lockUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	var id int64
	return tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
}

func balanceForUser(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var balance int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM entries WHERE user_id = $1`, userID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}
