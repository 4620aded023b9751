package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tokentasks/internal/domain"
)

// memoryUserRepository provides an in-memory implementation of UserRepository.
// All access is serialized behind the mutex; reads hand out copies so callers
// never alias the backing map.
type memoryUserRepository struct {
	users map[string]*domain.User
	mutex sync.RWMutex
}

// NewMemoryUserRepository creates a new in-memory user repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.NewNotFoundError(domain.CodeUserNotFound, "User not found")
	}
	return copyUser(user), nil
}

// ListByRole retrieves users with a specific role
func (r *memoryUserRepository) ListByRole(_ context.Context, role domain.UserRole) ([]*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]*domain.User, 0)
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}

// List retrieves all users
func (r *memoryUserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, copyUser(user))
	}
	return users, nil
}

// Create creates a new user
func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, exists := r.users[user.ID]; exists {
		return domain.NewConflictError("USER_EXISTS", "User already exists")
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

// Update updates an existing user
func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return domain.NewNotFoundError(domain.CodeUserNotFound, "User not found")
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

// Delete deletes a user by ID
func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[id]; !exists {
		return domain.NewNotFoundError(domain.CodeUserNotFound, "User not found")
	}
	delete(r.users, id)
	return nil
}

func copyUser(user *domain.User) *domain.User {
	clone := *user
	if user.PIN != nil {
		pin := *user.PIN
		clone.PIN = &pin
	}
	return &clone
}
