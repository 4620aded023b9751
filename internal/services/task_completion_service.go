package services

import (
	"context"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// CompletionResult aggregates the outcome of a single task completion.
type CompletionResult struct {
	Task                 *domain.Task          `json:"task"`
	TokensAwarded        int                   `json:"tokens_awarded"`
	NewBalance           int                   `json:"new_balance"`
	UnlockedAchievements []*domain.Achievement `json:"unlocked_achievements"`
}

// TaskCompletionService coordinates the completion flow: mark the task
// complete, credit the assignee's balance, then evaluate achievements.
type TaskCompletionService interface {
	// Complete marks a task as done and pays out its token reward.
	Complete(ctx context.Context, taskID string) (*CompletionResult, error)

	// Reopen clears a task's completion and debits the reward via the admin
	// path, which may leave the balance negative if tokens were already spent.
	Reopen(ctx context.Context, taskID string) (*domain.Task, error)
}

// taskCompletionService implements TaskCompletionService.
type taskCompletionService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	tracker  AchievementTracker
	cache    CacheManager
}

// NewTaskCompletionService creates a new task completion service.
func NewTaskCompletionService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	tracker AchievementTracker,
	cache CacheManager,
) TaskCompletionService {
	return &taskCompletionService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		tracker:  tracker,
		cache:    cache,
	}
}

// Complete marks a task as done and pays out its token reward.
//
// The steps run strictly in order: precondition checks, task write, balance
// write, achievement evaluation. There is no compensating transaction between
// the task and balance writes; durability across partial failure is the
// persistence collaborator's concern.
func (s *taskCompletionService) Complete(ctx context.Context, taskID string) (*CompletionResult, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return nil, domain.NewConflictError(domain.CodeTaskAlreadyCompleted, "Task is already completed")
	}

	user, err := s.userRepo.GetByID(ctx, task.AssignedToUserID)
	if err != nil {
		return nil, err
	}

	if err := task.Complete(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, domain.NewInternalError("TASK_UPDATE_FAILED", "Failed to persist task completion", err)
	}
	s.invalidateStats(ctx, user.ID)

	newBalance, err := user.Balance.Add(task.TokenReward)
	if err != nil {
		return nil, err
	}
	user.Balance = newBalance
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.NewInternalError("BALANCE_UPDATE_FAILED", "Failed to persist token credit", err)
	}

	unlocked, err := s.tracker.AfterTaskCompletion(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Task:                 task,
		TokensAwarded:        task.TokenReward,
		NewBalance:           newBalance.Value(),
		UnlockedAchievements: unlocked,
	}, nil
}

// Reopen clears a task's completion and debits the reward.
func (s *taskCompletionService) Reopen(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, task.AssignedToUserID)
	if err != nil {
		return nil, err
	}

	if err := task.Reopen(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, domain.NewInternalError("TASK_UPDATE_FAILED", "Failed to persist task reopen", err)
	}
	s.invalidateStats(ctx, user.ID)

	// The reward may already have been spent, so this uses the admin debit
	// and accepts a negative balance.
	newBalance, err := user.Balance.AdminSubtract(task.TokenReward)
	if err != nil {
		return nil, err
	}
	user.Balance = newBalance
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.NewInternalError("BALANCE_UPDATE_FAILED", "Failed to persist token correction", err)
	}

	return task, nil
}

// invalidateStats drops the cached stats snapshot so the next read reflects
// the completion or reopen that just landed.
func (s *taskCompletionService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateQueryResult(ctx, taskStatsCacheKey(userID))
}
