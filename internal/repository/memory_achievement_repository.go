package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tokentasks/internal/domain"
)

// achievementKey identifies one (user, type) record.
type achievementKey struct {
	userID          string
	achievementType domain.AchievementType
}

// memoryAchievementRepository provides an in-memory implementation of
// AchievementRepository keyed by (userID, type).
type memoryAchievementRepository struct {
	achievements map[achievementKey]*domain.Achievement
	mutex        sync.RWMutex
}

// NewMemoryAchievementRepository creates a new in-memory achievement repository.
func NewMemoryAchievementRepository() AchievementRepository {
	return &memoryAchievementRepository{
		achievements: make(map[achievementKey]*domain.Achievement),
	}
}

// GetByUserAndType retrieves one achievement record for a (user, type) pair
func (r *memoryAchievementRepository) GetByUserAndType(
	_ context.Context,
	userID string,
	achievementType domain.AchievementType,
) (*domain.Achievement, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	achievement, exists := r.achievements[achievementKey{userID, achievementType}]
	if !exists {
		return nil, domain.NewNotFoundError(domain.CodeAchievementNotFound, "Achievement not found")
	}
	return copyAchievement(achievement), nil
}

// ListByUser retrieves all achievement records for a user
func (r *memoryAchievementRepository) ListByUser(_ context.Context, userID string) ([]*domain.Achievement, error) {
	return r.listByUser(userID, nil)
}

// ListUnlocked retrieves a user's unlocked achievements
func (r *memoryAchievementRepository) ListUnlocked(_ context.Context, userID string) ([]*domain.Achievement, error) {
	unlocked := true
	return r.listByUser(userID, &unlocked)
}

// ListLocked retrieves a user's still-locked achievements
func (r *memoryAchievementRepository) ListLocked(_ context.Context, userID string) ([]*domain.Achievement, error) {
	unlocked := false
	return r.listByUser(userID, &unlocked)
}

func (r *memoryAchievementRepository) listByUser(userID string, unlocked *bool) ([]*domain.Achievement, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	// Iterate the canonical type order so listings are stable.
	achievements := make([]*domain.Achievement, 0)
	for _, achievementType := range domain.AllAchievementTypes() {
		achievement, exists := r.achievements[achievementKey{userID, achievementType}]
		if !exists {
			continue
		}
		if unlocked != nil && achievement.IsUnlocked != *unlocked {
			continue
		}
		achievements = append(achievements, copyAchievement(achievement))
	}
	return achievements, nil
}

// Update updates an existing achievement record
func (r *memoryAchievementRepository) Update(_ context.Context, achievement *domain.Achievement) error {
	if err := achievement.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := achievementKey{achievement.UserID, achievement.Type}
	if _, exists := r.achievements[key]; !exists {
		return domain.NewNotFoundError(domain.CodeAchievementNotFound, "Achievement not found")
	}
	r.achievements[key] = copyAchievement(achievement)
	return nil
}

// InitializeForUser lazily creates the full locked set for a user.
func (r *memoryAchievementRepository) InitializeForUser(_ context.Context, userID string) error {
	if userID == "" {
		return domain.NewValidationError("INVALID_ACHIEVEMENT_USER", "User ID is required", nil)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, achievementType := range domain.AllAchievementTypes() {
		key := achievementKey{userID, achievementType}
		if _, exists := r.achievements[key]; exists {
			continue
		}
		achievement := domain.NewAchievement(userID, achievementType)
		achievement.ID = uuid.New().String()
		r.achievements[key] = achievement
	}
	return nil
}

func copyAchievement(achievement *domain.Achievement) *domain.Achievement {
	clone := *achievement
	if achievement.UnlockedAt != nil {
		unlockedAt := *achievement.UnlockedAt
		clone.UnlockedAt = &unlockedAt
	}
	return &clone
}
