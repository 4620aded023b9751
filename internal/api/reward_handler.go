package api

import (
	"github.com/gin-gonic/gin"

	"tokentasks/internal/api/middleware"
	"tokentasks/internal/domain"
	"tokentasks/internal/services"
)

// RewardHandler handles reward-related HTTP requests.
type RewardHandler struct {
	rewardService     services.RewardService
	redemptionService services.RewardRedemptionService
}

// NewRewardHandler creates a new reward handler.
func NewRewardHandler(
	rewardService services.RewardService,
	redemptionService services.RewardRedemptionService,
) *RewardHandler {
	return &RewardHandler{
		rewardService:     rewardService,
		redemptionService: redemptionService,
	}
}

// RegisterRoutes registers reward routes with the router.
func (h *RewardHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	rewards := router.Group("/rewards")
	{
		rewards.GET("", h.ListRewards)
		rewards.GET("/stats", h.GetRewardStats)
		rewards.GET("/:id", h.GetReward)
		rewards.GET("/:id/can-redeem/:userId", h.CanRedeem)
		rewards.POST("/:id/redeem/:userId", h.Redeem)

		caregiver := rewards.Group("")
		caregiver.Use(authMiddleware.RequireCaregiver())
		{
			caregiver.POST("", h.CreateReward)
			caregiver.PUT("/:id", h.UpdateReward)
			caregiver.DELETE("/:id", h.DeleteReward)
		}
	}

	router.GET("/users/:id/redeemable-rewards", h.GetRedeemableRewards)
}

// CreateReward handles POST /api/rewards requests.
func (h *RewardHandler) CreateReward(c *gin.Context) {
	var req domain.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	reward, err := h.rewardService.CreateReward(c.Request.Context(), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, reward)
}

// GetReward handles GET /api/rewards/:id requests.
func (h *RewardHandler) GetReward(c *gin.Context) {
	reward, err := h.rewardService.GetReward(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, reward)
}

// ListRewards handles GET /api/rewards requests, optionally filtered by category.
func (h *RewardHandler) ListRewards(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		rewards, err := h.rewardService.ListRewardsByCategory(ctx, domain.RewardCategory(category))
		if err != nil {
			SanitizedErrorResponse(c, err)
			return
		}
		SuccessResponse(c, rewards)
		return
	}

	rewards, err := h.rewardService.ListRewards(ctx)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, rewards)
}

// UpdateReward handles PUT /api/rewards/:id requests.
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	var req domain.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	reward, err := h.rewardService.UpdateReward(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, reward)
}

// DeleteReward handles DELETE /api/rewards/:id requests.
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	if err := h.rewardService.DeleteReward(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}

// Redeem handles POST /api/rewards/:id/redeem/:userId requests.
func (h *RewardHandler) Redeem(c *gin.Context) {
	result, err := h.redemptionService.Redeem(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

// CanRedeem handles GET /api/rewards/:id/can-redeem/:userId requests.
func (h *RewardHandler) CanRedeem(c *gin.Context) {
	check, err := h.redemptionService.CanRedeem(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, check)
}

// GetRedeemableRewards handles GET /api/users/:id/redeemable-rewards requests.
func (h *RewardHandler) GetRedeemableRewards(c *gin.Context) {
	rewards, err := h.redemptionService.GetRedeemableRewards(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, rewards)
}

// GetRewardStats handles GET /api/rewards/stats requests.
func (h *RewardHandler) GetRewardStats(c *gin.Context) {
	stats, err := h.rewardService.GetRewardStats(c.Request.Context())
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, stats)
}
