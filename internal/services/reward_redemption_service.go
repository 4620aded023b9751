package services

import (
	"context"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// RedemptionResult aggregates the outcome of a reward redemption.
type RedemptionResult struct {
	Reward               *domain.Reward        `json:"reward"`
	User                 *domain.User          `json:"user"`
	TokensSpent          int                   `json:"tokens_spent"`
	NewBalance           int                   `json:"new_balance"`
	UnlockedAchievements []*domain.Achievement `json:"unlocked_achievements"`
}

// RedeemabilityCheck is the read-only breakdown behind CanRedeem, for UI
// decision-making.
type RedeemabilityCheck struct {
	CanRedeem        bool `json:"can_redeem"`
	IsAvailable      bool `json:"is_available"`
	RequiresApproval bool `json:"requires_approval"`
	HasEnoughTokens  bool `json:"has_enough_tokens"`
	RequiredTokens   int  `json:"required_tokens"`
	AvailableTokens  int  `json:"available_tokens"`
}

// RewardRedemptionService coordinates reward redemption: validate the reward,
// debit the balance, then progress spending-driven achievements.
type RewardRedemptionService interface {
	// Redeem validates and executes a redemption.
	Redeem(ctx context.Context, rewardID, userID string) (*RedemptionResult, error)

	// CanRedeem performs the same validation as Redeem without mutating state.
	CanRedeem(ctx context.Context, rewardID, userID string) (*RedeemabilityCheck, error)

	// GetRedeemableRewards returns rewards that are available, affordable and
	// not approval-gated for the user.
	GetRedeemableRewards(ctx context.Context, userID string) ([]*domain.Reward, error)
}

// rewardRedemptionService implements RewardRedemptionService.
type rewardRedemptionService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
	tracker    AchievementTracker
}

// NewRewardRedemptionService creates a new reward redemption service.
func NewRewardRedemptionService(
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	tracker AchievementTracker,
) RewardRedemptionService {
	return &rewardRedemptionService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
		tracker:    tracker,
	}
}

// Redeem validates and executes a redemption. Preconditions are checked in a
// fixed order and the first failure is returned: reward exists, user exists,
// reward available, not approval-gated, affordable.
func (s *rewardRedemptionService) Redeem(ctx context.Context, rewardID, userID string) (*RedemptionResult, error) {
	reward, user, err := s.load(ctx, rewardID, userID)
	if err != nil {
		return nil, err
	}

	if !reward.IsAvailable {
		return nil, domain.NewPreconditionError(domain.CodeRewardUnavailable,
			"Reward is not available", nil)
	}
	if reward.RequiresApproval {
		// Approval-gated rewards are never auto-redeemed.
		return nil, domain.NewPreconditionError(domain.CodeRewardRequiresApproval,
			"Reward requires caregiver approval", nil)
	}
	if !user.Balance.CanAfford(reward.TokenCost) {
		return nil, domain.NewInsufficientTokensError(reward.TokenCost, user.Balance.Value())
	}

	newBalance, err := user.Balance.Subtract(reward.TokenCost)
	if err != nil {
		return nil, err
	}
	user.Balance = newBalance
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.NewInternalError("BALANCE_UPDATE_FAILED", "Failed to persist token debit", err)
	}

	unlocked, err := s.tracker.AfterTokenSpending(ctx, user.ID, reward.TokenCost)
	if err != nil {
		return nil, err
	}

	return &RedemptionResult{
		Reward:               reward,
		User:                 user,
		TokensSpent:          reward.TokenCost,
		NewBalance:           newBalance.Value(),
		UnlockedAchievements: unlocked,
	}, nil
}

// CanRedeem performs the redemption validation without mutating state.
func (s *rewardRedemptionService) CanRedeem(ctx context.Context, rewardID, userID string) (*RedeemabilityCheck, error) {
	reward, user, err := s.load(ctx, rewardID, userID)
	if err != nil {
		return nil, err
	}

	check := &RedeemabilityCheck{
		IsAvailable:      reward.IsAvailable,
		RequiresApproval: reward.RequiresApproval,
		HasEnoughTokens:  user.Balance.CanAfford(reward.TokenCost),
		RequiredTokens:   reward.TokenCost,
		AvailableTokens:  user.Balance.Value(),
	}
	check.CanRedeem = check.IsAvailable && !check.RequiresApproval && check.HasEnoughTokens
	return check, nil
}

// GetRedeemableRewards returns rewards redeemable by the user right now.
func (s *rewardRedemptionService) GetRedeemableRewards(ctx context.Context, userID string) ([]*domain.Reward, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	available, err := s.rewardRepo.ListAvailable(ctx)
	if err != nil {
		return nil, domain.NewInternalError("REWARD_QUERY_FAILED", "Failed to list rewards", err)
	}

	redeemable := make([]*domain.Reward, 0, len(available))
	for _, reward := range available {
		if reward.RequiresApproval {
			continue
		}
		if !user.Balance.CanAfford(reward.TokenCost) {
			continue
		}
		redeemable = append(redeemable, reward)
	}
	return redeemable, nil
}

func (s *rewardRedemptionService) load(ctx context.Context, rewardID, userID string) (*domain.Reward, *domain.User, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return reward, user, nil
}
