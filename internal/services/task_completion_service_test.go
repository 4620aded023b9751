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

type completionFixture struct {
	service     services.TaskCompletionService
	taskService services.TaskService
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()
	taskRepo := repository.NewMemoryTaskRepository()
	userRepo := repository.NewMemoryUserRepository()
	achievementRepo := repository.NewMemoryAchievementRepository()
	tracker := services.NewAchievementTracker(achievementRepo, taskRepo, nil)
	cache := services.NewCacheManager(services.NewMemoryCacheBackend(), "memory", nil)
	return &completionFixture{
		service:     services.NewTaskCompletionService(taskRepo, userRepo, tracker, cache),
		taskService: services.NewTaskService(taskRepo, userRepo, cache),
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

func (f *completionFixture) seedChild(t *testing.T, id string, balance int) *domain.User {
	t.Helper()
	user := domain.NewUser("Riley", domain.ChildRole)
	user.ID = id
	user.Balance = domain.NewAdminTokenBalance(balance)
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *completionFixture) seedTask(t *testing.T, userID string, category domain.TaskCategory) *domain.Task {
	t.Helper()
	task := domain.NewTask("Tidy room", "", category, userID)
	require.NoError(t, f.taskRepo.Create(context.Background(), task))
	return task
}

func TestTaskCompletionService_Complete(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHousehold)

	result, err := f.service.Complete(ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, result.TokensAwarded)
	assert.Equal(t, 10, result.NewBalance)
	assert.True(t, result.Task.IsCompleted)
	require.NotNil(t, result.Task.CompletedAt)

	// First completion unlocks the first-task achievement.
	assert.Contains(t, unlockedTypes(result.UnlockedAchievements), domain.AchievementFirstTask)

	// The credit is persisted.
	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 10, user.Balance.Value())

	stored, err := f.taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
}

func TestTaskCompletionService_CompleteTwice(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHomework)

	_, err := f.service.Complete(ctx, task.ID)
	require.NoError(t, err)

	_, err = f.service.Complete(ctx, task.ID)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeTaskAlreadyCompleted))

	// The repeated attempt must not credit tokens again.
	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 15, user.Balance.Value())
}

func TestTaskCompletionService_TaskNotFound(t *testing.T) {
	f := newCompletionFixture(t)

	_, err := f.service.Complete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeTaskNotFound))
}

func TestTaskCompletionService_AssigneeNotFound(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	task := f.seedTask(t, "ghost", domain.CategoryHousehold)

	_, err := f.service.Complete(ctx, task.ID)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeUserNotFound))

	// The task must stay incomplete when the precondition fails.
	stored, err := f.taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCompleted)
}

func TestTaskCompletionService_Reopen(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHousehold)

	_, err := f.service.Complete(ctx, task.ID)
	require.NoError(t, err)

	reopened, err := f.service.Reopen(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)

	user, err := f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 0, user.Balance.Value())
}

func TestTaskCompletionService_ReopenAfterSpendingGoesNegative(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	user := f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHousehold)

	_, err := f.service.Complete(ctx, task.ID)
	require.NoError(t, err)

	// Simulate the reward already having been spent.
	user, err = f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	spent, err := user.Balance.Subtract(8)
	require.NoError(t, err)
	user.Balance = spent
	require.NoError(t, f.userRepo.Update(ctx, user))

	_, err = f.service.Reopen(ctx, task.ID)
	require.NoError(t, err)

	user, err = f.userRepo.GetByID(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, -8, user.Balance.Value())
}

func TestTaskCompletionService_RefreshesStatsCache(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)
	f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHousehold)

	// Warm the cache before the completion lands.
	stats, err := f.taskService.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletedTasks)

	_, err = f.service.Complete(ctx, task.ID)
	require.NoError(t, err)

	stats, err = f.taskService.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 10, stats.TokensEarned)

	// Reopening drops the snapshot again.
	_, err = f.service.Reopen(ctx, task.ID)
	require.NoError(t, err)

	stats, err = f.taskService.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletedTasks)
	assert.Equal(t, 0, stats.TokensEarned)
}

func TestTaskCompletionService_ReopenIncompleteTask(t *testing.T) {
	f := newCompletionFixture(t)
	f.seedChild(t, "child-1", 0)
	task := f.seedTask(t, "child-1", domain.CategoryHousehold)

	_, err := f.service.Reopen(context.Background(), task.ID)
	assert.Error(t, err)
}
