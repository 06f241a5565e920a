package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/banco-digital/banco_core/internal/credential"
)

// Service manages the account-holder registry.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the input and stores a new user with a sequential ID.
// The checks run in a fixed order so the caller always sees the same error
// when several fields are invalid: duplicate email, name format, duplicate
// national ID, missing fields, national-ID checksum, email format.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	nationalID := strings.TrimSpace(input.NationalID)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	if !ValidName(name) {
		return User{}, ErrInvalidName
	}

	if _, err := s.repo.FindByNationalID(ctx, nationalID); err == nil {
		return User{}, ErrDuplicateNationalID
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	if name == "" || nationalID == "" || email == "" || input.Password == "" {
		return User{}, ErrMissingField
	}

	if !ValidNationalID(nationalID) {
		return User{}, ErrInvalidNationalID
	}

	if !ValidEmail(email) {
		return User{}, ErrInvalidEmail
	}

	hash, err := credential.Hash(input.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		Name:         name,
		NationalID:   nationalID,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, user)
}

// UpdateProfile edits name, email and optionally the password of an existing
// user, gated on the current password. The validation order mirrors Register:
// blank fields, current password, name format, email ownership, email format,
// unchanged password.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || email == "" {
		return User{}, ErrMissingField
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if !credential.Verify(input.CurrentPassword, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	if !ValidName(name) {
		return User{}, ErrInvalidName
	}

	if email != user.Email {
		if other, err := s.repo.FindByEmail(ctx, email); err == nil && other.ID != user.ID {
			return User{}, ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, ErrUserNotFound) {
			return User{}, err
		}
	}

	if !ValidEmail(email) {
		return User{}, ErrInvalidEmail
	}

	if input.NewPassword != "" {
		if credential.Verify(input.NewPassword, user.PasswordHash) {
			return User{}, ErrSamePassword
		}
		hash, err := credential.Hash(input.NewPassword)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}

	user.Name = name
	user.Email = email

	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Get returns the user with the given identifier.
func (s *Service) Get(ctx context.Context, userID int64) (User, error) {
	return s.repo.FindByID(ctx, userID)
}
