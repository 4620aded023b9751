package domain

import "time"

// AchievementType identifies one of the nine tracked achievements. Each type
// carries a fixed numeric target.
type AchievementType string

const (
	// AchievementFirstTask unlocks on the first completed task.
	AchievementFirstTask AchievementType = "first_task"
	// AchievementTaskNovice unlocks at 10 completed tasks.
	AchievementTaskNovice AchievementType = "task_novice"
	// AchievementTaskExpert unlocks at 25 completed tasks.
	AchievementTaskExpert AchievementType = "task_expert"
	// AchievementTaskChampion unlocks at 50 completed tasks.
	AchievementTaskChampion AchievementType = "task_champion"
	// AchievementTokenCollector unlocks at 100 tokens earned.
	AchievementTokenCollector AchievementType = "token_collector"
	// AchievementTaskMaster unlocks whenever every assigned task is complete.
	AchievementTaskMaster AchievementType = "task_master"
	// AchievementThreeDayStreak is a completed-count proxy for a true
	// 3-day streak; see the tracker for the known simplification.
	AchievementThreeDayStreak AchievementType = "three_day_streak"
	// AchievementEarlyBird is a completed-count proxy for morning completions.
	AchievementEarlyBird AchievementType = "early_bird"
	// AchievementBigSpender unlocks at 50 tokens spent on rewards.
	AchievementBigSpender AchievementType = "big_spender"
)

// AllAchievementTypes lists every tracked type in display order.
func AllAchievementTypes() []AchievementType {
	return []AchievementType{
		AchievementFirstTask,
		AchievementTaskNovice,
		AchievementTaskExpert,
		AchievementTaskChampion,
		AchievementTokenCollector,
		AchievementTaskMaster,
		AchievementThreeDayStreak,
		AchievementEarlyBird,
		AchievementBigSpender,
	}
}

// IsValid reports whether the type is one of the nine known values.
func (t AchievementType) IsValid() bool {
	for _, known := range AllAchievementTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Target returns the progress threshold that unlocks the achievement.
func (t AchievementType) Target() int {
	switch t {
	case AchievementFirstTask:
		return 1
	case AchievementTaskNovice:
		return 10
	case AchievementTaskExpert:
		return 25
	case AchievementTaskChampion:
		return 50
	case AchievementTokenCollector:
		return 100
	case AchievementTaskMaster:
		return 1
	case AchievementThreeDayStreak:
		return 3
	case AchievementEarlyBird:
		return 5
	case AchievementBigSpender:
		return 50
	default:
		return 0
	}
}

// Title returns the display name for the achievement type.
func (t AchievementType) Title() string {
	switch t {
	case AchievementFirstTask:
		return "First Steps"
	case AchievementTaskNovice:
		return "Task Novice"
	case AchievementTaskExpert:
		return "Task Expert"
	case AchievementTaskChampion:
		return "Task Champion"
	case AchievementTokenCollector:
		return "Token Collector"
	case AchievementTaskMaster:
		return "Task Master"
	case AchievementThreeDayStreak:
		return "3-Day Streak"
	case AchievementEarlyBird:
		return "Early Bird"
	case AchievementBigSpender:
		return "Big Spender"
	default:
		return string(t)
	}
}

// Achievement is a per-user, per-type progress counter with a one-way unlock.
type Achievement struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       AchievementType `json:"type"`
	Progress   int             `json:"progress"`
	IsUnlocked bool            `json:"is_unlocked"`
	UnlockedAt *time.Time      `json:"unlocked_at"`
}

// NewAchievement creates a locked achievement at zero progress.
func NewAchievement(userID string, achievementType AchievementType) *Achievement {
	return &Achievement{
		UserID: userID,
		Type:   achievementType,
	}
}

// AdvanceTo raises progress toward the target. Progress never decreases and
// is capped at the target; the unlock itself is a separate transition.
// Returns true if progress changed.
func (a *Achievement) AdvanceTo(progress int) bool {
	if progress > a.Type.Target() {
		progress = a.Type.Target()
	}
	if progress <= a.Progress {
		return false
	}
	a.Progress = progress
	return true
}

// Unlock transitions the achievement to unlocked. The transition is
// one-directional; unlocking an unlocked achievement is a no-op.
// Returns true if the achievement transitioned.
func (a *Achievement) Unlock(now time.Time) bool {
	if a.IsUnlocked {
		return false
	}
	a.IsUnlocked = true
	a.UnlockedAt = &now
	return true
}

// TargetMet reports whether progress has reached the unlock threshold.
func (a *Achievement) TargetMet() bool {
	return a.Progress >= a.Type.Target()
}

// Validate checks the achievement invariants.
func (a *Achievement) Validate() error {
	if a.UserID == "" {
		return NewValidationError("INVALID_ACHIEVEMENT_USER", "User ID is required", nil)
	}
	if !a.Type.IsValid() {
		return NewValidationError("INVALID_ACHIEVEMENT_TYPE", "Unknown achievement type", map[string]interface{}{
			"value": a.Type,
		})
	}
	if a.Progress < 0 {
		return NewValidationError("INVALID_ACHIEVEMENT_PROGRESS", "Progress cannot be negative", nil)
	}
	if a.IsUnlocked != (a.UnlockedAt != nil) {
		return NewValidationError("INCONSISTENT_UNLOCK",
			"Unlock flag and unlock timestamp must agree", nil)
	}
	return nil
}
