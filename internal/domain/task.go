package domain

import (
	"strings"
	"time"
)

// TaskCategory classifies a task and determines its default token reward.
type TaskCategory string

const (
	CategoryPersonalCare TaskCategory = "personal_care"
	CategoryHousehold    TaskCategory = "household"
	CategoryHomework     TaskCategory = "homework"
)

// IsValid reports whether the category is one of the known values.
func (c TaskCategory) IsValid() bool {
	switch c {
	case CategoryPersonalCare, CategoryHousehold, CategoryHomework:
		return true
	default:
		return false
	}
}

// DefaultTokenReward returns the reward a task of this category earns unless
// overridden per-task.
func (c TaskCategory) DefaultTokenReward() int {
	switch c {
	case CategoryPersonalCare:
		return 5
	case CategoryHousehold:
		return 10
	case CategoryHomework:
		return 15
	default:
		return 0
	}
}

// Task is an assignable unit of work that pays out tokens on completion.
type Task struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         TaskCategory `json:"category"`
	TokenReward      int          `json:"token_reward"`
	IsCompleted      bool         `json:"is_completed"`
	AssignedToUserID string       `json:"assigned_to_user_id"`
	CreatedAt        time.Time    `json:"created_at"`
	CompletedAt      *time.Time   `json:"completed_at"`
}

// NewTask creates a task with the category's default token reward.
func NewTask(title, description string, category TaskCategory, assignedToUserID string) *Task {
	return &Task{
		Title:            title,
		Description:      description,
		Category:         category,
		TokenReward:      category.DefaultTokenReward(),
		AssignedToUserID: assignedToUserID,
		CreatedAt:        time.Now(),
	}
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("INVALID_TASK_TITLE", "Title is required", map[string]interface{}{
			"field": "title",
		})
	}
	if !t.Category.IsValid() {
		return NewValidationError("INVALID_TASK_CATEGORY", "Unknown task category", map[string]interface{}{
			"field": "category",
			"value": t.Category,
		})
	}
	if t.TokenReward <= 0 {
		return NewValidationError("INVALID_TOKEN_REWARD", "Token reward must be positive", map[string]interface{}{
			"field": "token_reward",
			"value": t.TokenReward,
		})
	}
	if t.AssignedToUserID == "" {
		return NewValidationError("INVALID_ASSIGNEE", "Assigned user ID is required", map[string]interface{}{
			"field": "assigned_to_user_id",
		})
	}
	if t.IsCompleted != (t.CompletedAt != nil) {
		return NewValidationError("INCONSISTENT_COMPLETION",
			"Completion flag and completion timestamp must agree", nil)
	}
	return nil
}

// Complete marks the task as done exactly once per active cycle.
func (t *Task) Complete() error {
	if t.IsCompleted {
		return NewConflictError(CodeTaskAlreadyCompleted, "Task is already completed")
	}
	now := time.Now()
	t.IsCompleted = true
	t.CompletedAt = &now
	return nil
}

// Reopen clears the completion state so the task can be completed again.
func (t *Task) Reopen() error {
	if !t.IsCompleted {
		return NewConflictError("TASK_NOT_COMPLETED", "Task is not completed")
	}
	t.IsCompleted = false
	t.CompletedAt = nil
	return nil
}

// CreateTaskRequest represents the data needed to create a new task.
type CreateTaskRequest struct {
	Title            string       `json:"title" binding:"required,min=1,max=200"`
	Description      string       `json:"description" binding:"max=1000"`
	Category         TaskCategory `json:"category" binding:"required"`
	TokenReward      *int         `json:"token_reward,omitempty"`
	AssignedToUserID string       `json:"assigned_to_user_id" binding:"required"`
}

// UpdateTaskRequest represents the fields that can be updated on a task.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *TaskCategory `json:"category,omitempty"`
	TokenReward *int          `json:"token_reward,omitempty"`
}
