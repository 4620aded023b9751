package domain

import (
	"fmt"
	"strings"
	"time"
)

// RewardCategory bounds the valid token cost of a reward.
type RewardCategory string

const (
	RewardCategorySmall  RewardCategory = "small"
	RewardCategoryMedium RewardCategory = "medium"
	RewardCategoryLarge  RewardCategory = "large"
)

// IsValid reports whether the category is one of the known values.
func (c RewardCategory) IsValid() bool {
	switch c {
	case RewardCategorySmall, RewardCategoryMedium, RewardCategoryLarge:
		return true
	default:
		return false
	}
}

// CostBounds returns the inclusive [min, max] token cost band for the category.
func (c RewardCategory) CostBounds() (min, max int) {
	switch c {
	case RewardCategorySmall:
		return 5, 15
	case RewardCategoryMedium:
		return 16, 40
	case RewardCategoryLarge:
		return 41, 100
	default:
		return 0, 0
	}
}

// Reward is a redeemable item priced in tokens.
type Reward struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         RewardCategory `json:"category"`
	TokenCost        int            `json:"token_cost"`
	IsAvailable      bool           `json:"is_available"`
	IsCustom         bool           `json:"is_custom"`
	RequiresApproval bool           `json:"requires_approval"`
	CreatedByUserID  *string        `json:"created_by_user_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewReward creates an available reward in the given category.
func NewReward(title, description string, category RewardCategory, tokenCost int) *Reward {
	return &Reward{
		Title:       title,
		Description: description,
		Category:    category,
		TokenCost:   tokenCost,
		IsAvailable: true,
		CreatedAt:   time.Now(),
	}
}

// NewCustomReward creates a caregiver-authored reward attributed to its creator.
func NewCustomReward(title, description string, category RewardCategory, tokenCost int, createdBy string) *Reward {
	reward := NewReward(title, description, category, tokenCost)
	reward.IsCustom = true
	reward.CreatedByUserID = &createdBy
	return reward
}

// Validate checks the reward invariants, including the category cost band.
func (r *Reward) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidationError("INVALID_REWARD_TITLE", "Title is required", map[string]interface{}{
			"field": "title",
		})
	}
	if strings.TrimSpace(r.Description) == "" {
		return NewValidationError("INVALID_REWARD_DESCRIPTION", "Description is required", map[string]interface{}{
			"field": "description",
		})
	}
	if !r.Category.IsValid() {
		return NewValidationError("INVALID_REWARD_CATEGORY", "Unknown reward category", map[string]interface{}{
			"field": "category",
			"value": r.Category,
		})
	}
	if err := r.validateCost(r.TokenCost); err != nil {
		return err
	}
	if r.IsCustom && (r.CreatedByUserID == nil || *r.CreatedByUserID == "") {
		return NewValidationError("MISSING_REWARD_CREATOR",
			"Custom rewards must record their creator", nil)
	}
	return nil
}

// UpdateCost changes the token cost, revalidating against the category band.
func (r *Reward) UpdateCost(cost int) error {
	if err := r.validateCost(cost); err != nil {
		return err
	}
	r.TokenCost = cost
	return nil
}

func (r *Reward) validateCost(cost int) error {
	min, max := r.Category.CostBounds()
	if cost < min || cost > max {
		return NewValidationError("TOKEN_COST_OUT_OF_RANGE",
			fmt.Sprintf("Token cost for %s rewards must be between %d and %d", r.Category, min, max),
			map[string]interface{}{
				"field": "token_cost",
				"value": cost,
				"min":   min,
				"max":   max,
			})
	}
	return nil
}

// CreateRewardRequest represents the data needed to create a new reward.
type CreateRewardRequest struct {
	Title            string         `json:"title" binding:"required,min=1,max=200"`
	Description      string         `json:"description" binding:"required,max=1000"`
	Category         RewardCategory `json:"category" binding:"required"`
	TokenCost        int            `json:"token_cost" binding:"required"`
	RequiresApproval bool           `json:"requires_approval"`
	CreatedByUserID  string         `json:"created_by_user_id,omitempty"`
}

// UpdateRewardRequest represents the fields that can be updated on a reward.
type UpdateRewardRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	TokenCost        *int    `json:"token_cost,omitempty"`
	IsAvailable      *bool   `json:"is_available,omitempty"`
	RequiresApproval *bool   `json:"requires_approval,omitempty"`
}
