package repository

import (
	"context"

	"tokentasks/internal/domain"
)

// RewardRepository defines the interface for reward data access operations.
type RewardRepository interface {
	// GetByID retrieves a reward by its ID
	GetByID(ctx context.Context, id string) (*domain.Reward, error)

	// ListByCategory retrieves rewards in a specific category
	ListByCategory(ctx context.Context, category domain.RewardCategory) ([]*domain.Reward, error)

	// List retrieves all rewards
	List(ctx context.Context) ([]*domain.Reward, error)

	// ListAvailable retrieves rewards currently marked available
	ListAvailable(ctx context.Context) ([]*domain.Reward, error)

	// Create creates a new reward
	Create(ctx context.Context, reward *domain.Reward) error

	// Update updates an existing reward
	Update(ctx context.Context, reward *domain.Reward) error

	// Delete deletes a reward by ID
	Delete(ctx context.Context, id string) error
}
