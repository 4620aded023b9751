package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
	"tokentasks/internal/services"
)

type redemptionFixture struct {
	service    services.RewardRedemptionService
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
}

func newRedemptionFixture(t *testing.T) *redemptionFixture {
	t.Helper()
	rewardRepo := repository.NewMemoryRewardRepository()
	userRepo := repository.NewMemoryUserRepository()
	taskRepo := repository.NewMemoryTaskRepository()
	achievementRepo := repository.NewMemoryAchievementRepository()
	tracker := services.NewAchievementTracker(achievementRepo, taskRepo, nil)
	return &redemptionFixture{
		service:    services.NewRewardRedemptionService(rewardRepo, userRepo, tracker),
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
	}
}

func (f *redemptionFixture) seedChild(t *testing.T, id string, balance int) *domain.User {
	t.Helper()
	user := domain.NewUser("Riley", domain.ChildRole)
	user.ID = id
	user.Balance = domain.NewAdminTokenBalance(balance)
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *redemptionFixture) seedReward(t *testing.T, category domain.RewardCategory, cost int) *domain.Reward {
	t.Helper()
	reward := domain.NewReward("Movie night", "Pick the movie", category, cost)
	require.NoError(t, f.rewardRepo.Create(context.Background(), reward))
	return reward
}

func TestRewardRedemptionService_Redeem(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 30)
	reward := f.seedReward(t, domain.RewardCategoryMedium, 25)

	result, err := f.service.Redeem(ctx, reward.ID, "child-1")
	require.NoError(t, err)

	assert.Equal(t, 25, result.TokensSpent)
	assert.Equal(t, 5, result.NewBalance)

	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 5, user.Balance.Value())
}

func TestRewardRedemptionService_InsufficientTokens(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 20)
	reward := f.seedReward(t, domain.RewardCategoryMedium, 25)

	_, err := f.service.Redeem(ctx, reward.ID, "child-1")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeInsufficientTokens))

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, 25, domainErr.Details["required"])
	assert.Equal(t, 20, domainErr.Details["available"])

	// A failed redemption leaves the balance untouched.
	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 20, user.Balance.Value())
}

func TestRewardRedemptionService_UnavailableReward(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 100)
	reward := f.seedReward(t, domain.RewardCategoryMedium, 25)
	reward.IsAvailable = false
	require.NoError(t, f.rewardRepo.Update(ctx, reward))

	_, err := f.service.Redeem(ctx, reward.ID, "child-1")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeRewardUnavailable))
}

func TestRewardRedemptionService_ApprovalGate(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 100)
	reward := f.seedReward(t, domain.RewardCategoryLarge, 50)
	reward.RequiresApproval = true
	require.NoError(t, f.rewardRepo.Update(ctx, reward))

	_, err := f.service.Redeem(ctx, reward.ID, "child-1")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeRewardRequiresApproval))

	// Even with enough tokens, the balance stays untouched.
	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 100, user.Balance.Value())
}

func TestRewardRedemptionService_RewardNotFound(t *testing.T) {
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 100)

	_, err := f.service.Redeem(context.Background(), "missing", "child-1")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeRewardNotFound))
}

func TestRewardRedemptionService_UserNotFound(t *testing.T) {
	f := newRedemptionFixture(t)
	reward := f.seedReward(t, domain.RewardCategorySmall, 10)

	_, err := f.service.Redeem(context.Background(), reward.ID, "missing")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeUserNotFound))
}

func TestRewardRedemptionService_CanRedeem(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 20)

	t.Run("insufficient tokens", func(t *testing.T) {
		reward := f.seedReward(t, domain.RewardCategoryMedium, 25)

		check, err := f.service.CanRedeem(ctx, reward.ID, "child-1")
		require.NoError(t, err)

		assert.False(t, check.CanRedeem)
		assert.True(t, check.IsAvailable)
		assert.False(t, check.RequiresApproval)
		assert.False(t, check.HasEnoughTokens)
		assert.Equal(t, 25, check.RequiredTokens)
		assert.Equal(t, 20, check.AvailableTokens)
	})

	t.Run("approval gated", func(t *testing.T) {
		reward := f.seedReward(t, domain.RewardCategorySmall, 10)
		reward.RequiresApproval = true
		require.NoError(t, f.rewardRepo.Update(ctx, reward))

		check, err := f.service.CanRedeem(ctx, reward.ID, "child-1")
		require.NoError(t, err)

		assert.False(t, check.CanRedeem)
		assert.True(t, check.HasEnoughTokens)
		assert.True(t, check.RequiresApproval)
	})

	t.Run("redeemable", func(t *testing.T) {
		reward := f.seedReward(t, domain.RewardCategorySmall, 10)

		check, err := f.service.CanRedeem(ctx, reward.ID, "child-1")
		require.NoError(t, err)

		assert.True(t, check.CanRedeem)
	})
}

func TestRewardRedemptionService_GetRedeemableRewards(t *testing.T) {
	ctx := context.Background()
	f := newRedemptionFixture(t)
	f.seedChild(t, "child-1", 20)

	affordable := f.seedReward(t, domain.RewardCategorySmall, 10)
	f.seedReward(t, domain.RewardCategoryMedium, 25)

	gated := f.seedReward(t, domain.RewardCategorySmall, 5)
	gated.RequiresApproval = true
	require.NoError(t, f.rewardRepo.Update(ctx, gated))

	hidden := f.seedReward(t, domain.RewardCategorySmall, 5)
	hidden.IsAvailable = false
	require.NoError(t, f.rewardRepo.Update(ctx, hidden))

	redeemable, err := f.service.GetRedeemableRewards(ctx, "child-1")
	require.NoError(t, err)
	require.Len(t, redeemable, 1)
	assert.Equal(t, affordable.ID, redeemable[0].ID)
}
