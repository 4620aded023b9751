// Package repository provides data access interfaces following SOLID principles.
package repository

import (
	"context"

	"tokentasks/internal/domain"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// ListByRole retrieves users with a specific role
	ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.User, error)

	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// Update updates an existing user
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id string) error
}
