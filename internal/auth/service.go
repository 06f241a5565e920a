package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/banco-digital/banco_core/internal/config"
	"github.com/banco-digital/banco_core/internal/credential"
	"github.com/banco-digital/banco_core/internal/identity"
	"github.com/banco-digital/banco_core/internal/throttle"
)

var (
	// ErrAccountLocked indicates the email is serving a lockout window.
	ErrAccountLocked = errors.New("account locked after repeated failed logins")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service authenticates users and issues tokens.
type Service struct {
	cfg      config.Config
	repo     identity.Repository
	attempts throttle.Store
}

// NewService creates an auth service.
func NewService(cfg config.Config, repo identity.Repository, attempts throttle.Store) *Service {
	return &Service{cfg: cfg, repo: repo, attempts: attempts}
}

// TokenPair bundles the issued tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login verifies credentials under the lockout policy. A locked email is
// rejected immediately without counting as an attempt; otherwise the outcome
// is recorded, including failures for emails that match no user.
func (s *Service) Login(ctx context.Context, email, password string) (identity.User, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	locked, err := s.attempts.Locked(ctx, email)
	if err == nil && locked {
		return identity.User{}, TokenPair{}, ErrAccountLocked
	}
	// Throttle store errors fail open: an unreachable store must not take
	// logins down with it.

	user, findErr := s.repo.FindByEmail(ctx, email)
	ok := findErr == nil && credential.Verify(password, user.PasswordHash)

	_ = s.attempts.RecordAttempt(ctx, email, ok)

	if !ok {
		if findErr != nil && !errors.Is(findErr, identity.ErrUserNotFound) {
			return identity.User{}, TokenPair{}, findErr
		}
		return identity.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return identity.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

func (s *Service) issuePair(user identity.User) (TokenPair, error) {
	access, err := SignToken(user.ID, user.TokenVersion, []byte(s.cfg.JWTSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := SignToken(user.ID, user.TokenVersion, []byte(s.cfg.RefreshSecret), s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL / time.Second),
	}, nil
}

// Refresh verifies the refresh token and issues a new access token if the
// token version is still current.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := ParseToken(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", 0, ErrInvalidToken
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", 0, ErrInvalidToken
	}

	access, err := SignToken(user.ID, user.TokenVersion, []byte(s.cfg.JWTSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return access, int64(s.cfg.AccessTokenTTL / time.Second), nil
}

// Logout bumps the user's token version so outstanding tokens become invalid.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.UpdateTokenVersion(ctx, user.ID, user.TokenVersion+1)
}
