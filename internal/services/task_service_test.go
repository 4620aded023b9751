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

type taskServiceFixture struct {
	service  services.TaskService
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()
	taskRepo := repository.NewMemoryTaskRepository()
	userRepo := repository.NewMemoryUserRepository()
	cache := services.NewCacheManager(services.NewMemoryCacheBackend(), "test", nil)
	return &taskServiceFixture{
		service:  services.NewTaskService(taskRepo, userRepo, cache),
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

func (f *taskServiceFixture) seedChild(t *testing.T, id string) {
	t.Helper()
	user := domain.NewUser("Riley", domain.ChildRole)
	user.ID = id
	require.NoError(t, f.userRepo.Create(context.Background(), user))
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	task, err := f.service.CreateTask(ctx, domain.CreateTaskRequest{
		Title:            "Tidy room",
		Category:         domain.CategoryHousehold,
		AssignedToUserID: "child-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 10, task.TokenReward)
	assert.False(t, task.IsCompleted)
}

func TestTaskService_CreateTaskWithRewardOverride(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	override := 20
	task, err := f.service.CreateTask(ctx, domain.CreateTaskRequest{
		Title:            "Deep clean",
		Category:         domain.CategoryHousehold,
		TokenReward:      &override,
		AssignedToUserID: "child-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, task.TokenReward)
}

func TestTaskService_CreateTaskForUnknownUser(t *testing.T) {
	f := newTaskServiceFixture(t)

	_, err := f.service.CreateTask(context.Background(), domain.CreateTaskRequest{
		Title:            "Tidy room",
		Category:         domain.CategoryHousehold,
		AssignedToUserID: "ghost",
	})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeUserNotFound))
}

func TestTaskService_UpdateTaskCategoryResetsReward(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	task, err := f.service.CreateTask(ctx, domain.CreateTaskRequest{
		Title:            "Tidy room",
		Category:         domain.CategoryHousehold,
		AssignedToUserID: "child-1",
	})
	require.NoError(t, err)

	homework := domain.CategoryHomework
	updated, err := f.service.UpdateTask(ctx, task.ID, domain.UpdateTaskRequest{
		Category: &homework,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryHomework, updated.Category)
	assert.Equal(t, 15, updated.TokenReward)

	// An explicit reward in the same request wins over the category default.
	personalCare := domain.CategoryPersonalCare
	override := 7
	updated, err = f.service.UpdateTask(ctx, task.ID, domain.UpdateTaskRequest{
		Category:    &personalCare,
		TokenReward: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.TokenReward)
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	task, err := f.service.CreateTask(ctx, domain.CreateTaskRequest{
		Title:            "Tidy room",
		Category:         domain.CategoryHousehold,
		AssignedToUserID: "child-1",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteTask(ctx, task.ID))

	_, err = f.service.GetTask(ctx, task.ID)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeTaskNotFound))
}

func TestTaskService_GetTaskStats(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	for i := 0; i < 4; i++ {
		_, err := f.service.CreateTask(ctx, domain.CreateTaskRequest{
			Title:            "Chore",
			Category:         domain.CategoryPersonalCare,
			AssignedToUserID: "child-1",
		})
		require.NoError(t, err)
	}

	tasks, err := f.service.ListUserTasks(ctx, "child-1")
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	// Complete three of the four directly through the store.
	for _, task := range tasks[:3] {
		require.NoError(t, task.Complete())
		require.NoError(t, f.taskRepo.Update(ctx, task))
	}

	stats, err := f.service.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 3, stats.CompletedTasks)
	assert.Equal(t, 1, stats.IncompleteTasks)
	assert.InDelta(t, 0.75, stats.CompletionRate, 0.001)
	assert.Equal(t, 15, stats.TokensEarned)
}

func TestTaskService_StatsCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	f := newTaskServiceFixture(t)
	f.seedChild(t, "child-1")

	stats, err := f.service.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalTasks)

	// A write must invalidate the cached snapshot.
	_, err = f.service.CreateTask(ctx, domain.CreateTaskRequest{
		Title:            "Chore",
		Category:         domain.CategoryPersonalCare,
		AssignedToUserID: "child-1",
	})
	require.NoError(t, err)

	stats, err = f.service.GetTaskStats(ctx, "child-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTasks)
}
