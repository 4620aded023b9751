package repository_test

import (
	"context"
	"testing"
	"time"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

func seedTask(t *testing.T, repo repository.TaskRepository, userID string, reward int, completed bool) *domain.Task {
	t.Helper()
	task := domain.NewTask("chore", "", domain.CategoryHousehold, userID)
	task.TokenReward = reward
	if completed {
		now := time.Now()
		task.IsCompleted = true
		task.CompletedAt = &now
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return task
}

func TestMemoryTaskRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTaskRepository()

	task := seedTask(t, repo, "user-1", 10, false)
	if task.ID == "" {
		t.Fatal("Expected an ID to be assigned on create")
	}

	stored, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stored.Title != task.Title {
		t.Errorf("Expected title %q, got %q", task.Title, stored.Title)
	}

	// Mutating the returned copy must not touch the stored task.
	stored.Title = "changed"
	again, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if again.Title == "changed" {
		t.Error("Expected repository to hand out copies")
	}
}

func TestMemoryTaskRepository_GetMissing(t *testing.T) {
	repo := repository.NewMemoryTaskRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
	if !domain.HasCode(err, domain.CodeTaskNotFound) {
		t.Errorf("Expected code %s, got %v", domain.CodeTaskNotFound, err)
	}
}

func TestMemoryTaskRepository_CreateRejectsInvalid(t *testing.T) {
	repo := repository.NewMemoryTaskRepository()

	task := domain.NewTask("", "", domain.CategoryHousehold, "user-1")
	if err := repo.Create(context.Background(), task); err == nil {
		t.Error("Expected error creating an invalid task")
	}
}

func TestMemoryTaskRepository_Counts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTaskRepository()

	seedTask(t, repo, "user-1", 10, true)
	seedTask(t, repo, "user-1", 15, true)
	seedTask(t, repo, "user-1", 5, false)
	seedTask(t, repo, "user-2", 10, true)

	completed, err := repo.CountCompleted(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if completed != 2 {
		t.Errorf("Expected 2 completed, got %d", completed)
	}

	incomplete, err := repo.CountIncomplete(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if incomplete != 1 {
		t.Errorf("Expected 1 incomplete, got %d", incomplete)
	}

	earned, err := repo.SumTokensEarned(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if earned != 25 {
		t.Errorf("Expected 25 tokens earned, got %d", earned)
	}
}

func TestMemoryTaskRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTaskRepository()

	seedTask(t, repo, "user-1", 10, false)
	seedTask(t, repo, "user-1", 10, false)
	seedTask(t, repo, "user-2", 10, false)

	tasks, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(tasks))
	}
}

func TestMemoryTaskRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTaskRepository()

	task := seedTask(t, repo, "user-1", 10, false)
	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, task.ID); err == nil {
		t.Error("Expected task to be gone")
	}
	if err := repo.Delete(ctx, task.ID); err == nil {
		t.Error("Expected error deleting a missing task")
	}
}
