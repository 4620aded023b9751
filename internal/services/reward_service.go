package services

import (
	"context"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// RewardStats aggregates read-only reward statistics.
type RewardStats struct {
	TotalRewards     int     `json:"total_rewards"`
	AvailableRewards int     `json:"available_rewards"`
	CustomRewards    int     `json:"custom_rewards"`
	AverageTokenCost float64 `json:"average_token_cost"`
}

// RewardService defines the interface for reward CRUD business logic.
type RewardService interface {
	// CreateReward creates a new reward; a creator ID marks it custom
	CreateReward(ctx context.Context, req domain.CreateRewardRequest) (*domain.Reward, error)

	// GetReward gets a reward by ID
	GetReward(ctx context.Context, rewardID string) (*domain.Reward, error)

	// ListRewards lists all rewards
	ListRewards(ctx context.Context) ([]*domain.Reward, error)

	// ListRewardsByCategory lists rewards in a category
	ListRewardsByCategory(ctx context.Context, category domain.RewardCategory) ([]*domain.Reward, error)

	// UpdateReward updates a reward's editable fields
	UpdateReward(ctx context.Context, rewardID string, req domain.UpdateRewardRequest) (*domain.Reward, error)

	// DeleteReward deletes a custom reward; predefined rewards cannot be deleted
	DeleteReward(ctx context.Context, rewardID string) error

	// GetRewardStats aggregates reward statistics
	GetRewardStats(ctx context.Context) (*RewardStats, error)
}

// rewardService implements RewardService interface.
type rewardService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
	cache      CacheManager
}

// NewRewardService creates a new reward service.
func NewRewardService(
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	cache CacheManager,
) RewardService {
	return &rewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

// CreateReward creates a new reward.
func (s *rewardService) CreateReward(ctx context.Context, req domain.CreateRewardRequest) (*domain.Reward, error) {
	var reward *domain.Reward
	if req.CreatedByUserID != "" {
		if _, err := s.userRepo.GetByID(ctx, req.CreatedByUserID); err != nil {
			return nil, err
		}
		reward = domain.NewCustomReward(req.Title, req.Description, req.Category, req.TokenCost, req.CreatedByUserID)
	} else {
		reward = domain.NewReward(req.Title, req.Description, req.Category, req.TokenCost)
	}
	reward.RequiresApproval = req.RequiresApproval

	if err := reward.Validate(); err != nil {
		return nil, err
	}
	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return reward, nil
}

// GetReward gets a reward by ID.
func (s *rewardService) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	return s.rewardRepo.GetByID(ctx, rewardID)
}

// ListRewards lists all rewards.
func (s *rewardService) ListRewards(ctx context.Context) ([]*domain.Reward, error) {
	return s.rewardRepo.List(ctx)
}

// ListRewardsByCategory lists rewards in a category.
func (s *rewardService) ListRewardsByCategory(ctx context.Context, category domain.RewardCategory) ([]*domain.Reward, error) {
	if !category.IsValid() {
		return nil, domain.NewValidationError("INVALID_REWARD_CATEGORY", "Unknown reward category", map[string]interface{}{
			"value": category,
		})
	}
	return s.rewardRepo.ListByCategory(ctx, category)
}

// UpdateReward updates a reward's editable fields.
func (s *rewardService) UpdateReward(ctx context.Context, rewardID string, req domain.UpdateRewardRequest) (*domain.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		reward.Title = *req.Title
	}
	if req.Description != nil {
		reward.Description = *req.Description
	}
	if req.TokenCost != nil {
		if err := reward.UpdateCost(*req.TokenCost); err != nil {
			return nil, err
		}
	}
	if req.IsAvailable != nil {
		reward.IsAvailable = *req.IsAvailable
	}
	if req.RequiresApproval != nil {
		reward.RequiresApproval = *req.RequiresApproval
	}

	if err := reward.Validate(); err != nil {
		return nil, err
	}
	if err := s.rewardRepo.Update(ctx, reward); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return reward, nil
}

// DeleteReward deletes a custom reward. Predefined rewards are part of the
// seeded catalog and cannot be removed.
func (s *rewardService) DeleteReward(ctx context.Context, rewardID string) error {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return err
	}
	if !reward.IsCustom {
		return domain.NewPreconditionError(domain.CodeCannotDeletePredefined,
			"Predefined rewards cannot be deleted", nil)
	}
	if err := s.rewardRepo.Delete(ctx, rewardID); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// GetRewardStats aggregates reward statistics.
func (s *rewardService) GetRewardStats(ctx context.Context) (*RewardStats, error) {
	if s.cache != nil {
		var cached RewardStats
		if found, _ := s.cache.GetCachedQueryResult(ctx, rewardStatsCacheKey, &cached); found {
			return &cached, nil
		}
	}

	rewards, err := s.rewardRepo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("REWARD_STATS_FAILED", "Failed to list rewards", err)
	}

	stats := &RewardStats{TotalRewards: len(rewards)}
	totalCost := 0
	for _, reward := range rewards {
		if reward.IsAvailable {
			stats.AvailableRewards++
		}
		if reward.IsCustom {
			stats.CustomRewards++
		}
		totalCost += reward.TokenCost
	}
	if len(rewards) > 0 {
		stats.AverageTokenCost = float64(totalCost) / float64(len(rewards))
	}

	if s.cache != nil {
		_ = s.cache.CacheQueryResult(ctx, rewardStatsCacheKey, stats, statsCacheTTL)
	}
	return stats, nil
}

func (s *rewardService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateQueryResult(ctx, rewardStatsCacheKey)
}

const rewardStatsCacheKey = "reward_stats"
