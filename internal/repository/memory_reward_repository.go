package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tokentasks/internal/domain"
)

// memoryRewardRepository provides an in-memory implementation of RewardRepository.
type memoryRewardRepository struct {
	rewards map[string]*domain.Reward
	mutex   sync.RWMutex
}

// NewMemoryRewardRepository creates a new in-memory reward repository.
func NewMemoryRewardRepository() RewardRepository {
	return &memoryRewardRepository{
		rewards: make(map[string]*domain.Reward),
	}
}

// GetByID retrieves a reward by its ID
func (r *memoryRewardRepository) GetByID(_ context.Context, id string) (*domain.Reward, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	reward, exists := r.rewards[id]
	if !exists {
		return nil, domain.NewNotFoundError(domain.CodeRewardNotFound, "Reward not found")
	}
	return copyReward(reward), nil
}

// ListByCategory retrieves rewards in a specific category
func (r *memoryRewardRepository) ListByCategory(_ context.Context, category domain.RewardCategory) ([]*domain.Reward, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rewards := make([]*domain.Reward, 0)
	for _, reward := range r.rewards {
		if reward.Category == category {
			rewards = append(rewards, copyReward(reward))
		}
	}
	return rewards, nil
}

// List retrieves all rewards
func (r *memoryRewardRepository) List(_ context.Context) ([]*domain.Reward, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rewards := make([]*domain.Reward, 0, len(r.rewards))
	for _, reward := range r.rewards {
		rewards = append(rewards, copyReward(reward))
	}
	return rewards, nil
}

// ListAvailable retrieves rewards currently marked available
func (r *memoryRewardRepository) ListAvailable(_ context.Context) ([]*domain.Reward, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rewards := make([]*domain.Reward, 0)
	for _, reward := range r.rewards {
		if reward.IsAvailable {
			rewards = append(rewards, copyReward(reward))
		}
	}
	return rewards, nil
}

// Create creates a new reward
func (r *memoryRewardRepository) Create(_ context.Context, reward *domain.Reward) error {
	if err := reward.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if reward.ID == "" {
		reward.ID = uuid.New().String()
	}
	if _, exists := r.rewards[reward.ID]; exists {
		return domain.NewConflictError("REWARD_EXISTS", "Reward already exists")
	}
	r.rewards[reward.ID] = copyReward(reward)
	return nil
}

// Update updates an existing reward
func (r *memoryRewardRepository) Update(_ context.Context, reward *domain.Reward) error {
	if err := reward.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.rewards[reward.ID]; !exists {
		return domain.NewNotFoundError(domain.CodeRewardNotFound, "Reward not found")
	}
	r.rewards[reward.ID] = copyReward(reward)
	return nil
}

// Delete deletes a reward by ID
func (r *memoryRewardRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.rewards[id]; !exists {
		return domain.NewNotFoundError(domain.CodeRewardNotFound, "Reward not found")
	}
	delete(r.rewards, id)
	return nil
}

func copyReward(reward *domain.Reward) *domain.Reward {
	clone := *reward
	if reward.CreatedByUserID != nil {
		createdBy := *reward.CreatedByUserID
		clone.CreatedByUserID = &createdBy
	}
	return &clone
}
