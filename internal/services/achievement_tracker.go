// Package services contains the business logic orchestration layer.
package services

import (
	"context"
	"log/slog"
	"time"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// AchievementTracker evaluates achievement progress after task completions and
// token-spending events. Unlocks are one-directional: an achievement that is
// already unlocked is skipped, and only achievements that transition during an
// invocation are returned.
type AchievementTracker interface {
	// AfterTaskCompletion re-evaluates completion-driven achievements for a user
	// and returns the ones newly unlocked by this event.
	AfterTaskCompletion(ctx context.Context, userID string) ([]*domain.Achievement, error)

	// AfterTokenSpending advances spending-driven achievements by the amount
	// just spent and returns the ones newly unlocked by this event.
	AfterTokenSpending(ctx context.Context, userID string, amount int) ([]*domain.Achievement, error)

	// GetUserAchievements returns the full achievement set for a user,
	// initializing it if the user has never been tracked.
	GetUserAchievements(ctx context.Context, userID string) ([]*domain.Achievement, error)
}

// achievementTracker implements AchievementTracker.
type achievementTracker struct {
	achievementRepo repository.AchievementRepository
	taskRepo        repository.TaskQueryRepository
	logger          *slog.Logger
}

// NewAchievementTracker creates a new achievement tracker.
func NewAchievementTracker(
	achievementRepo repository.AchievementRepository,
	taskRepo repository.TaskQueryRepository,
	logger *slog.Logger,
) AchievementTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &achievementTracker{
		achievementRepo: achievementRepo,
		taskRepo:        taskRepo,
		logger:          logger,
	}
}

// completionStats is the authoritative snapshot the completion-driven policies
// evaluate against.
type completionStats struct {
	completedTasks  int
	incompleteTasks int
	tokensEarned    int
}

// AfterTaskCompletion re-evaluates completion-driven achievements for a user.
func (t *achievementTracker) AfterTaskCompletion(ctx context.Context, userID string) ([]*domain.Achievement, error) {
	if err := t.achievementRepo.InitializeForUser(ctx, userID); err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_INIT_FAILED",
			"Failed to initialize achievements", err)
	}

	stats, err := t.collectStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	locked, err := t.achievementRepo.ListLocked(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_QUERY_FAILED",
			"Failed to load locked achievements", err)
	}

	newlyUnlocked := make([]*domain.Achievement, 0)
	for _, achievement := range locked {
		progress, tracked := completionProgress(achievement.Type, stats)
		if !tracked {
			continue
		}
		unlocked, err := t.apply(ctx, achievement, progress)
		if err != nil {
			return nil, err
		}
		if unlocked {
			newlyUnlocked = append(newlyUnlocked, achievement)
		}
	}
	return newlyUnlocked, nil
}

// AfterTokenSpending advances spending-driven achievements for a user.
func (t *achievementTracker) AfterTokenSpending(ctx context.Context, userID string, amount int) ([]*domain.Achievement, error) {
	if amount < 0 {
		return nil, domain.NewValidationError("NEGATIVE_SPEND",
			"Spent amount cannot be negative", nil)
	}
	if err := t.achievementRepo.InitializeForUser(ctx, userID); err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_INIT_FAILED",
			"Failed to initialize achievements", err)
	}

	achievement, err := t.achievementRepo.GetByUserAndType(ctx, userID, domain.AchievementBigSpender)
	if err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_QUERY_FAILED",
			"Failed to load spending achievement", err)
	}
	if achievement.IsUnlocked {
		return []*domain.Achievement{}, nil
	}

	// Spending progress is cumulative across redemptions and is not backed by
	// a ledger query, so the stored progress is the source of truth here.
	unlocked, err := t.apply(ctx, achievement, achievement.Progress+amount)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return []*domain.Achievement{achievement}, nil
	}
	return []*domain.Achievement{}, nil
}

// GetUserAchievements returns the full achievement set for a user.
func (t *achievementTracker) GetUserAchievements(ctx context.Context, userID string) ([]*domain.Achievement, error) {
	if err := t.achievementRepo.InitializeForUser(ctx, userID); err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_INIT_FAILED",
			"Failed to initialize achievements", err)
	}
	achievements, err := t.achievementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("ACHIEVEMENT_QUERY_FAILED",
			"Failed to load achievements", err)
	}
	return achievements, nil
}

// apply advances a locked achievement to progress, persisting only when
// something changed, and unlocks it when the target is met. Returns true if
// the achievement transitioned to unlocked.
func (t *achievementTracker) apply(ctx context.Context, achievement *domain.Achievement, progress int) (bool, error) {
	changed := achievement.AdvanceTo(progress)

	unlocked := false
	if achievement.TargetMet() {
		unlocked = achievement.Unlock(time.Now())
	}
	if !changed && !unlocked {
		return false, nil
	}

	if err := t.achievementRepo.Update(ctx, achievement); err != nil {
		return false, domain.NewInternalError("ACHIEVEMENT_UPDATE_FAILED",
			"Failed to persist achievement", err)
	}
	if unlocked {
		t.logger.Info("achievement unlocked",
			"user_id", achievement.UserID,
			"type", achievement.Type,
		)
	}
	return unlocked, nil
}

func (t *achievementTracker) collectStats(ctx context.Context, userID string) (completionStats, error) {
	completed, err := t.taskRepo.CountCompleted(ctx, userID)
	if err != nil {
		return completionStats{}, domain.NewInternalError("TASK_STATS_FAILED",
			"Failed to count completed tasks", err)
	}
	incomplete, err := t.taskRepo.CountIncomplete(ctx, userID)
	if err != nil {
		return completionStats{}, domain.NewInternalError("TASK_STATS_FAILED",
			"Failed to count incomplete tasks", err)
	}
	earned, err := t.taskRepo.SumTokensEarned(ctx, userID)
	if err != nil {
		return completionStats{}, domain.NewInternalError("TASK_STATS_FAILED",
			"Failed to sum tokens earned", err)
	}
	return completionStats{
		completedTasks:  completed,
		incompleteTasks: incomplete,
		tokensEarned:    earned,
	}, nil
}

// completionProgress maps a completion-driven achievement type to its progress
// under the current stats. Returns tracked=false for types that completion
// events do not drive (spending achievements).
//
// The streak-style types (three_day_streak, early_bird) are keyed off the
// total completed-task count rather than calendar-day tracking. This is a
// known simplification; true streak logic needs completion timestamps and
// daily boundaries.
func completionProgress(achievementType domain.AchievementType, stats completionStats) (progress int, tracked bool) {
	switch achievementType {
	case domain.AchievementFirstTask,
		domain.AchievementTaskNovice,
		domain.AchievementTaskExpert,
		domain.AchievementTaskChampion,
		domain.AchievementThreeDayStreak,
		domain.AchievementEarlyBird:
		return stats.completedTasks, true
	case domain.AchievementTokenCollector:
		return stats.tokensEarned, true
	case domain.AchievementTaskMaster:
		if stats.completedTasks > 0 && stats.incompleteTasks == 0 {
			return 1, true
		}
		return 0, true
	case domain.AchievementBigSpender:
		return 0, false
	default:
		return 0, false
	}
}
