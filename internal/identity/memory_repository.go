package identity

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory user store for tests and DB-less
// development. Seed inserts rows directly since accounts have no API.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[int64]User
}

// NewMemoryRepository builds an empty in-memory user store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]User)}
}

// Seed stores a user as-is, standing in for out-of-band provisioning.
func (r *MemoryRepository) Seed(user User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *MemoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, id int64, changes ProfileChanges) error {
	if changes.Email == nil && changes.Password == nil && changes.Name == nil {
		return ErrNothingToUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.Password != nil {
		user.Password = *changes.Password
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	r.users[id] = user
	return nil
}
