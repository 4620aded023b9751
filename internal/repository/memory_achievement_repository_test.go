package repository_test

import (
	"context"
	"testing"
	"time"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

func TestMemoryAchievementRepository_InitializeForUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAchievementRepository()

	if err := repo.InitializeForUser(ctx, "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	achievements, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(achievements) != len(domain.AllAchievementTypes()) {
		t.Fatalf("Expected %d achievements, got %d", len(domain.AllAchievementTypes()), len(achievements))
	}
	for _, achievement := range achievements {
		if achievement.ID == "" {
			t.Error("Expected an ID to be assigned")
		}
		if achievement.IsUnlocked || achievement.Progress != 0 {
			t.Errorf("Expected a fresh locked record, got %+v", achievement)
		}
	}
}

func TestMemoryAchievementRepository_InitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAchievementRepository()

	if err := repo.InitializeForUser(ctx, "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Advance one record, then re-initialize; existing progress must survive.
	achievement, err := repo.GetByUserAndType(ctx, "user-1", domain.AchievementTaskNovice)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	achievement.AdvanceTo(4)
	if err := repo.Update(ctx, achievement); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := repo.InitializeForUser(ctx, "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	achievement, err = repo.GetByUserAndType(ctx, "user-1", domain.AchievementTaskNovice)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if achievement.Progress != 4 {
		t.Errorf("Expected progress 4 to survive re-initialization, got %d", achievement.Progress)
	}
}

func TestMemoryAchievementRepository_InitializeRequiresUser(t *testing.T) {
	repo := repository.NewMemoryAchievementRepository()

	if err := repo.InitializeForUser(context.Background(), ""); err == nil {
		t.Error("Expected error for empty user ID")
	}
}

func TestMemoryAchievementRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAchievementRepository()

	if err := repo.InitializeForUser(ctx, "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	achievement, err := repo.GetByUserAndType(ctx, "user-1", domain.AchievementFirstTask)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	achievement.AdvanceTo(1)
	achievement.Unlock(time.Now())
	if err := repo.Update(ctx, achievement); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	unlocked, err := repo.ListUnlocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].Type != domain.AchievementFirstTask {
		t.Errorf("Expected exactly the first-task achievement unlocked, got %d records", len(unlocked))
	}

	locked, err := repo.ListLocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(locked) != len(domain.AllAchievementTypes())-1 {
		t.Errorf("Expected %d locked records, got %d", len(domain.AllAchievementTypes())-1, len(locked))
	}
}

func TestMemoryAchievementRepository_UpdateMissing(t *testing.T) {
	repo := repository.NewMemoryAchievementRepository()

	achievement := domain.NewAchievement("user-1", domain.AchievementFirstTask)
	if err := repo.Update(context.Background(), achievement); err == nil {
		t.Error("Expected error updating an uninitialized record")
	}
}

func TestMemoryAchievementRepository_ListIsStable(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAchievementRepository()

	if err := repo.InitializeForUser(ctx, "user-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	achievements, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, achievementType := range domain.AllAchievementTypes() {
		if achievements[i].Type != achievementType {
			t.Errorf("Expected %s at position %d, got %s", achievementType, i, achievements[i].Type)
		}
	}
}
