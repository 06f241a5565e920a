package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
// Identifiers are assigned sequentially starting at 1.
func NewMemoryRepository() Repository {
	return &memoryRepository{nextID: 1, users: make(map[int64]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return User{}, ErrDuplicateEmail
		}
		if u.NationalID == user.NationalID {
			return User{}, ErrDuplicateNationalID
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *memoryRepository) FindByNationalID(_ context.Context, nationalID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.NationalID == nationalID {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *memoryRepository) Update(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	r.users[user.ID] = stored
	return nil
}

func (r *memoryRepository) UpdateTokenVersion(_ context.Context, id int64, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.TokenVersion = version
	r.users[id] = user
	return nil
}
