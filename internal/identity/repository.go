package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists users. Lookups return ErrUserNotFound when no user
// matches the key.
type Repository interface {
	// Create stores the user and returns it with its assigned sequential ID.
	Create(ctx context.Context, user User) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByNationalID(ctx context.Context, nationalID string) (User, error)
	// Update rewrites the mutable profile fields (name, email, password hash).
	Update(ctx context.Context, user User) error
	UpdateTokenVersion(ctx context.Context, id int64, version int) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. The id column is a BIGSERIAL, so insertion
// order determines the sequential identifier.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (name, national_id, email, password_hash, token_version, created_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Name, user.NationalID, user.Email, user.PasswordHash, user.TokenVersion, user.CreatedAt.UTC())
	if err := row.Scan(&user.ID); err != nil {
		return User{}, err
	}
	return user, nil
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail fetches a user by email. Callers are expected to lowercase the
// address beforehand; stored emails are already normalized.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

// FindByNationalID fetches a user by national ID (exact match).
func (r *PostgresRepository) FindByNationalID(ctx context.Context, nationalID string) (User, error) {
	return r.findOne(ctx, `WHERE national_id = $1`, nationalID)
}

func (r *PostgresRepository) findOne(ctx context.Context, where string, arg any) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, national_id, email, password_hash, token_version, created_at
        FROM users `+where, arg)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.ID, &user.Name, &user.NationalID, &user.Email, &user.PasswordHash, &user.TokenVersion, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

// Update rewrites the mutable profile fields.
func (r *PostgresRepository) Update(ctx context.Context, user User) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET name = $1, email = $2, password_hash = $3 WHERE id = $4`,
		user.Name, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateTokenVersion stores a new token version, invalidating older tokens.
func (r *PostgresRepository) UpdateTokenVersion(ctx context.Context, id int64, version int) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET token_version = $1 WHERE id = $2`, version, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
