package identity

import "errors"

var (
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateNationalID indicates the national ID is already registered.
	ErrDuplicateNationalID = errors.New("national id already registered")

	// ErrMissingField indicates a required field is blank.
	ErrMissingField = errors.New("all fields must be filled in")

	// ErrInvalidNationalID indicates the national ID failed format or checksum validation.
	ErrInvalidNationalID = errors.New("invalid national id")

	// ErrInvalidEmail indicates the email does not look like an address.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidName indicates the name contains characters other than letters and spaces
	// or is too short.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidCredentials indicates the supplied password does not match the stored digest.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSamePassword indicates a password change to the password already in use.
	ErrSamePassword = errors.New("new password must differ from the current one")

	// ErrUserNotFound indicates no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
)
