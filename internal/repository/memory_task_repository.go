package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tokentasks/internal/domain"
)

// memoryTaskRepository provides an in-memory implementation of TaskRepository.
type memoryTaskRepository struct {
	tasks map[string]*domain.Task
	mutex sync.RWMutex
}

// NewMemoryTaskRepository creates a new in-memory task repository.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{
		tasks: make(map[string]*domain.Task),
	}
}

// GetByID retrieves a task by its ID
func (r *memoryTaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, domain.NewNotFoundError(domain.CodeTaskNotFound, "Task not found")
	}
	return copyTask(task), nil
}

// ListByUser retrieves tasks assigned to a specific user
func (r *memoryTaskRepository) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range r.tasks {
		if task.AssignedToUserID == userID {
			tasks = append(tasks, copyTask(task))
		}
	}
	return tasks, nil
}

// List retrieves all tasks
func (r *memoryTaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tasks := make([]*domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, copyTask(task))
	}
	return tasks, nil
}

// CountCompleted returns the number of completed tasks for a user
func (r *memoryTaskRepository) CountCompleted(_ context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := 0
	for _, task := range r.tasks {
		if task.AssignedToUserID == userID && task.IsCompleted {
			count++
		}
	}
	return count, nil
}

// CountIncomplete returns the number of incomplete tasks for a user
func (r *memoryTaskRepository) CountIncomplete(_ context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := 0
	for _, task := range r.tasks {
		if task.AssignedToUserID == userID && !task.IsCompleted {
			count++
		}
	}
	return count, nil
}

// SumTokensEarned returns the total token rewards of a user's completed tasks
func (r *memoryTaskRepository) SumTokensEarned(_ context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := 0
	for _, task := range r.tasks {
		if task.AssignedToUserID == userID && task.IsCompleted {
			total += task.TokenReward
		}
	}
	return total, nil
}

// Create creates a new task
func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if _, exists := r.tasks[task.ID]; exists {
		return domain.NewConflictError("TASK_EXISTS", "Task already exists")
	}
	r.tasks[task.ID] = copyTask(task)
	return nil
}

// Update updates an existing task
func (r *memoryTaskRepository) Update(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tasks[task.ID]; !exists {
		return domain.NewNotFoundError(domain.CodeTaskNotFound, "Task not found")
	}
	r.tasks[task.ID] = copyTask(task)
	return nil
}

// Delete deletes a task by ID
func (r *memoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tasks[id]; !exists {
		return domain.NewNotFoundError(domain.CodeTaskNotFound, "Task not found")
	}
	delete(r.tasks, id)
	return nil
}

func copyTask(task *domain.Task) *domain.Task {
	clone := *task
	if task.CompletedAt != nil {
		completedAt := *task.CompletedAt
		clone.CompletedAt = &completedAt
	}
	return &clone
}
