package repository

import (
	"context"

	"tokentasks/internal/domain"
)

// TaskRepository defines the interface for task data access operations.
type TaskRepository interface {
	TaskQueryRepository
	TaskCommandRepository
}

// TaskQueryRepository defines query operations for tasks.
type TaskQueryRepository interface {
	// GetByID retrieves a task by its ID
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// ListByUser retrieves tasks assigned to a specific user
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)

	// List retrieves all tasks
	List(ctx context.Context) ([]*domain.Task, error)

	// CountCompleted returns the number of completed tasks for a user
	CountCompleted(ctx context.Context, userID string) (int, error)

	// CountIncomplete returns the number of incomplete tasks for a user
	CountIncomplete(ctx context.Context, userID string) (int, error)

	// SumTokensEarned returns the total token rewards of a user's completed tasks
	SumTokensEarned(ctx context.Context, userID string) (int, error)
}

// TaskCommandRepository defines command operations for tasks.
type TaskCommandRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *domain.Task) error

	// Update updates an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete deletes a task by ID
	Delete(ctx context.Context, id string) error
}
