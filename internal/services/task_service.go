package services

import (
	"context"
	"fmt"
	"time"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// TaskStats aggregates read-only task statistics for a user.
type TaskStats struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	IncompleteTasks int     `json:"incomplete_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
	TokensEarned    int     `json:"tokens_earned"`
}

// TaskService defines the interface for task CRUD business logic.
type TaskService interface {
	// CreateTask creates a new task assigned to a user
	CreateTask(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error)

	// GetTask gets a task by ID
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// ListUserTasks lists tasks assigned to a user
	ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error)

	// ListTasks lists all tasks
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// UpdateTask updates a task's editable fields
	UpdateTask(ctx context.Context, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(ctx context.Context, taskID string) error

	// GetTaskStats aggregates completion statistics for a user
	GetTaskStats(ctx context.Context, userID string) (*TaskStats, error)
}

// taskService implements TaskService interface.
type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	cache    CacheManager
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	cache CacheManager,
) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// CreateTask creates a new task assigned to a user.
func (s *taskService) CreateTask(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error) {
	// Check the assignee exists before building the task
	if _, err := s.userRepo.GetByID(ctx, req.AssignedToUserID); err != nil {
		return nil, err
	}

	task := domain.NewTask(req.Title, req.Description, req.Category, req.AssignedToUserID)
	if req.TokenReward != nil {
		task.TokenReward = *req.TokenReward
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.AssignedToUserID)
	return task, nil
}

// GetTask gets a task by ID.
func (s *taskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// ListUserTasks lists tasks assigned to a user.
func (s *taskService) ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByUser(ctx, userID)
}

// ListTasks lists all tasks.
func (s *taskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.taskRepo.List(ctx)
}

// UpdateTask updates a task's editable fields.
func (s *taskService) UpdateTask(ctx context.Context, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		task.Category = *req.Category
		// A category change resets the reward to the category default unless
		// the request also overrides it.
		if req.TokenReward == nil {
			task.TokenReward = req.Category.DefaultTokenReward()
		}
	}
	if req.TokenReward != nil {
		task.TokenReward = *req.TokenReward
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, task.AssignedToUserID)
	return task, nil
}

// DeleteTask deletes a task.
func (s *taskService) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidateStats(ctx, task.AssignedToUserID)
	return nil
}

// GetTaskStats aggregates completion statistics for a user.
func (s *taskService) GetTaskStats(ctx context.Context, userID string) (*TaskStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	cacheKey := taskStatsCacheKey(userID)
	if s.cache != nil {
		var cached TaskStats
		if found, _ := s.cache.GetCachedQueryResult(ctx, cacheKey, &cached); found {
			return &cached, nil
		}
	}

	completed, err := s.taskRepo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("TASK_STATS_FAILED", "Failed to count completed tasks", err)
	}
	incomplete, err := s.taskRepo.CountIncomplete(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("TASK_STATS_FAILED", "Failed to count incomplete tasks", err)
	}
	earned, err := s.taskRepo.SumTokensEarned(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("TASK_STATS_FAILED", "Failed to sum tokens earned", err)
	}

	stats := &TaskStats{
		TotalTasks:      completed + incomplete,
		CompletedTasks:  completed,
		IncompleteTasks: incomplete,
		TokensEarned:    earned,
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalTasks)
	}

	if s.cache != nil {
		_ = s.cache.CacheQueryResult(ctx, cacheKey, stats, statsCacheTTL)
	}
	return stats, nil
}

func (s *taskService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateQueryResult(ctx, taskStatsCacheKey(userID))
}

const statsCacheTTL = 5 * time.Minute

func taskStatsCacheKey(userID string) string {
	return fmt.Sprintf("task_stats:%s", userID)
}
