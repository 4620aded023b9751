package container

import (
	"context"

	"tokentasks/internal/domain"
)

// Seed loads the default family, task and reward catalog into the stores.
// It is meant for fresh development environments and demos.
func (c *Container) Seed(ctx context.Context) error {
	caregiver, err := c.UserService.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Alex",
		Role: domain.CaregiverRole,
		PIN:  "1234",
	})
	if err != nil {
		return err
	}

	child, err := c.UserService.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Riley",
		Role: domain.ChildRole,
	})
	if err != nil {
		return err
	}

	seedTasks := []domain.CreateTaskRequest{
		{Title: "Brush teeth", Description: "Morning and evening", Category: domain.CategoryPersonalCare, AssignedToUserID: child.ID},
		{Title: "Make the bed", Description: "Before school", Category: domain.CategoryPersonalCare, AssignedToUserID: child.ID},
		{Title: "Set the table", Description: "For dinner", Category: domain.CategoryHousehold, AssignedToUserID: child.ID},
		{Title: "Feed the cat", Description: "One scoop, fresh water", Category: domain.CategoryHousehold, AssignedToUserID: child.ID},
		{Title: "Reading homework", Description: "20 minutes", Category: domain.CategoryHomework, AssignedToUserID: child.ID},
	}
	for _, req := range seedTasks {
		if _, err := c.TaskService.CreateTask(ctx, req); err != nil {
			return err
		}
	}

	seedRewards := []domain.CreateRewardRequest{
		{Title: "Sticker pack", Description: "A pack of fun stickers", Category: domain.RewardCategorySmall, TokenCost: 10},
		{Title: "Extra screen time", Description: "30 minutes of screen time", Category: domain.RewardCategoryMedium, TokenCost: 25},
		{Title: "Movie night pick", Description: "Choose the family movie", Category: domain.RewardCategoryMedium, TokenCost: 30},
		{Title: "Trip to the zoo", Description: "A family day out", Category: domain.RewardCategoryLarge, TokenCost: 80, RequiresApproval: true},
	}
	for _, req := range seedRewards {
		if _, err := c.RewardService.CreateReward(ctx, req); err != nil {
			return err
		}
	}

	c.Logger.Info("seeded demo data",
		"caregiver_id", caregiver.ID,
		"child_id", child.ID,
		"tasks", len(seedTasks),
		"rewards", len(seedRewards),
	)
	return nil
}
