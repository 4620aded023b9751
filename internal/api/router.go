package api

import (
	"github.com/gin-gonic/gin"

	"tokentasks/internal/api/middleware"
	"tokentasks/internal/container"
)

// NewRouter assembles the gin engine over a wired container.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(middleware.LoggingConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.RecoveryMiddleware(c.Logger))

	authMiddleware := middleware.NewAuthMiddleware(c.AuthService)

	NewHealthHandler(c.HealthService).RegisterRoutes(router)

	apiGroup := router.Group("/api")
	NewTaskHandler(c.TaskService, c.CompletionService).RegisterRoutes(apiGroup, authMiddleware)
	NewRewardHandler(c.RewardService, c.RedemptionService).RegisterRoutes(apiGroup, authMiddleware)
	NewAchievementHandler(c.Tracker, c.AchievementRepo).RegisterRoutes(apiGroup)
	NewUserHandler(c.UserService, c.AuthService).RegisterRoutes(apiGroup, authMiddleware)

	return router
}
