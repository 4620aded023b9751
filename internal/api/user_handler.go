package api

import (
	"github.com/gin-gonic/gin"

	"tokentasks/internal/api/middleware"
	"tokentasks/internal/domain"
	"tokentasks/internal/services"
)

// userResponse is the client-facing view of a user; the token balance is
// flattened and the PIN hash is never exposed.
type userResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	Avatar    string          `json:"avatar,omitempty"`
	Balance   int             `json:"token_balance"`
	HasPIN    bool            `json:"has_pin"`
	CreatedAt string          `json:"created_at"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		Avatar:    user.Avatar,
		Balance:   user.Balance.Value(),
		HasPIN:    user.PIN != nil,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService services.UserService
	authService services.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes registers user routes with the router.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)

		caregiver := users.Group("")
		caregiver.Use(authMiddleware.RequireCaregiver())
		{
			caregiver.POST("", h.CreateUser)
			caregiver.DELETE("/:id", h.DeleteUser)
		}
	}

	auth := router.Group("/auth")
	{
		auth.POST("/verify-pin", h.VerifyPIN)
		auth.POST("/change-pin", h.ChangePIN)
	}
}

// CreateUser handles POST /api/users requests.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, toUserResponse(user))
}

// GetUser handles GET /api/users/:id requests.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, toUserResponse(user))
}

// ListUsers handles GET /api/users requests, optionally filtered by role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if role := c.Query("role"); role != "" {
		users, err := h.userService.ListUsersByRole(ctx, domain.UserRole(role))
		if err != nil {
			SanitizedErrorResponse(c, err)
			return
		}
		SuccessResponse(c, toUserResponses(users))
		return
	}

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, toUserResponses(users))
}

// DeleteUser handles DELETE /api/users/:id requests.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}

// VerifyPIN handles POST /api/auth/verify-pin requests.
func (h *UserHandler) VerifyPIN(c *gin.Context) {
	var req domain.VerifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	session, err := h.authService.VerifyPIN(c.Request.Context(), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, session)
}

// ChangePIN handles POST /api/auth/change-pin requests.
func (h *UserHandler) ChangePIN(c *gin.Context) {
	var req domain.ChangePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	if err := h.userService.ChangePIN(c.Request.Context(), req); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{"changed": true})
}
