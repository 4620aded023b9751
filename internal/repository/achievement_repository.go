package repository

import (
	"context"

	"tokentasks/internal/domain"
)

// AchievementRepository defines the interface for achievement data access operations.
type AchievementRepository interface {
	// GetByUserAndType retrieves one achievement record for a (user, type) pair
	GetByUserAndType(ctx context.Context, userID string, achievementType domain.AchievementType) (*domain.Achievement, error)

	// ListByUser retrieves all achievement records for a user
	ListByUser(ctx context.Context, userID string) ([]*domain.Achievement, error)

	// ListUnlocked retrieves a user's unlocked achievements
	ListUnlocked(ctx context.Context, userID string) ([]*domain.Achievement, error)

	// ListLocked retrieves a user's still-locked achievements
	ListLocked(ctx context.Context, userID string) ([]*domain.Achievement, error)

	// Update updates an existing achievement record
	Update(ctx context.Context, achievement *domain.Achievement) error

	// InitializeForUser lazily creates the full locked set for a user.
	// Calling it again for the same user is a no-op.
	InitializeForUser(ctx context.Context, userID string) error
}
