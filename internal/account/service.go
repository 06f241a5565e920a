// Package account orchestrates money movement over the identity registry and
// the ledger.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/banco-digital/banco_core/internal/identity"
	"github.com/banco-digital/banco_core/internal/ledger"
	"github.com/banco-digital/banco_core/internal/notification"
)

var (
	// ErrInvalidAmount indicates an amount below one minor currency unit.
	ErrInvalidAmount = errors.New("amount must be at least 0.01")

	// ErrRecipientNotFound indicates no user owns the given national ID.
	ErrRecipientNotFound = errors.New("recipient not found")
)

// Service exposes account operations backed by the ledger.
type Service struct {
	repo     identity.Repository
	ledger   ledger.Ledger
	notifier notification.Notifier
}

// NewService builds an account service.
func NewService(repo identity.Repository, led ledger.Ledger, notifier notification.Notifier) *Service {
	return &Service{repo: repo, ledger: led, notifier: notifier}
}

// Deposit credits the user's account.
func (s *Service) Deposit(ctx context.Context, userID, amount int64) (ledger.Entry, error) {
	if amount < 1 {
		return ledger.Entry{}, ErrInvalidAmount
	}
	return s.ledger.Record(ctx, userID, amount, ledger.KindDeposit, "")
}

// Withdraw debits the user's account if the balance covers it.
func (s *Service) Withdraw(ctx context.Context, userID, amount int64) (ledger.Entry, error) {
	if amount < 1 {
		return ledger.Entry{}, ErrInvalidAmount
	}
	return s.ledger.Withdraw(ctx, userID, amount, "")
}

// Transfer moves funds to the user identified by the recipient's national ID.
// The two resulting ledger entries are created as one atomic unit.
func (s *Service) Transfer(ctx context.Context, userID int64, recipientNationalID string, amount int64) (ledger.TransferResult, error) {
	if amount < 1 {
		return ledger.TransferResult{}, ErrInvalidAmount
	}

	sender, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ledger.TransferResult{}, err
	}
	recipient, err := s.repo.FindByNationalID(ctx, recipientNationalID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return ledger.TransferResult{}, ErrRecipientNotFound
		}
		return ledger.TransferResult{}, err
	}

	res, err := s.ledger.Transfer(ctx, sender.ID, recipient.ID, amount,
		fmt.Sprintf("To %s", recipient.Name), fmt.Sprintf("From %s", sender.Name))
	if err != nil {
		return ledger.TransferResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: recipient.Email,
			Body:        fmt.Sprintf("You received %d.%02d from %s", amount/100, amount%100, sender.Name),
		})
	}

	return res, nil
}

// Balance returns the user's current balance derived from the ledger.
func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.ledger.Balance(ctx, userID)
}

// Statement returns the user's most recent ledger entries, newest first.
func (s *Service) Statement(ctx context.Context, userID int64) ([]ledger.Entry, error) {
	return s.ledger.Statement(ctx, userID)
}
