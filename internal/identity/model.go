package identity

import "time"

// User represents a registered account holder.
type User struct {
	ID           int64
	Name         string
	NationalID   string
	Email        string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	Name       string
	NationalID string
	Email      string
	Password   string
}

// UpdateProfileInput carries a profile edit. NewPassword is optional; when
// empty the stored digest is kept.
type UpdateProfileInput struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
}
