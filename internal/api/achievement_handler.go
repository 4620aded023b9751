package api

import (
	"github.com/gin-gonic/gin"

	"tokentasks/internal/repository"
	"tokentasks/internal/services"
)

// AchievementHandler handles achievement-related HTTP requests.
type AchievementHandler struct {
	tracker         services.AchievementTracker
	achievementRepo repository.AchievementRepository
}

// NewAchievementHandler creates a new achievement handler.
func NewAchievementHandler(
	tracker services.AchievementTracker,
	achievementRepo repository.AchievementRepository,
) *AchievementHandler {
	return &AchievementHandler{
		tracker:         tracker,
		achievementRepo: achievementRepo,
	}
}

// RegisterRoutes registers achievement routes with the router.
func (h *AchievementHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/:id/achievements", h.ListUserAchievements)
		users.GET("/:id/achievements/unlocked", h.ListUnlockedAchievements)
	}
}

// ListUserAchievements handles GET /api/users/:id/achievements requests.
// The full set is lazily initialized for users never tracked before.
func (h *AchievementHandler) ListUserAchievements(c *gin.Context) {
	achievements, err := h.tracker.GetUserAchievements(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, achievements)
}

// ListUnlockedAchievements handles GET /api/users/:id/achievements/unlocked requests.
func (h *AchievementHandler) ListUnlockedAchievements(c *gin.Context) {
	achievements, err := h.achievementRepo.ListUnlocked(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, achievements)
}
