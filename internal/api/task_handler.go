package api

import (
	"github.com/gin-gonic/gin"

	"tokentasks/internal/api/middleware"
	"tokentasks/internal/domain"
	"tokentasks/internal/services"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService       services.TaskService
	completionService services.TaskCompletionService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(
	taskService services.TaskService,
	completionService services.TaskCompletionService,
) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		completionService: completionService,
	}
}

// RegisterRoutes registers task routes with the router. Mutating routes other
// than completion are caregiver-gated; completing a task is a child action.
func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.POST("/:id/complete", h.CompleteTask)

		caregiver := tasks.Group("")
		caregiver.Use(authMiddleware.RequireCaregiver())
		{
			caregiver.POST("", h.CreateTask)
			caregiver.PUT("/:id", h.UpdateTask)
			caregiver.DELETE("/:id", h.DeleteTask)
			caregiver.POST("/:id/reopen", h.ReopenTask)
		}
	}

	users := router.Group("/users")
	{
		users.GET("/:id/tasks", h.ListUserTasks)
		users.GET("/:id/task-stats", h.GetTaskStats)
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req domain.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, task)
}

// GetTask handles GET /api/tasks/:id requests.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, task)
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, tasks)
}

// ListUserTasks handles GET /api/users/:id/tasks requests.
func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	tasks, err := h.taskService.ListUserTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, tasks)
}

// UpdateTask handles PUT /api/tasks/:id requests.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req domain.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid request body", nil))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, task)
}

// DeleteTask handles DELETE /api/tasks/:id requests.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}

// CompleteTask handles POST /api/tasks/:id/complete requests.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	result, err := h.completionService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

// ReopenTask handles POST /api/tasks/:id/reopen requests.
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	task, err := h.completionService.Reopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, task)
}

// GetTaskStats handles GET /api/users/:id/task-stats requests.
func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	stats, err := h.taskService.GetTaskStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, stats)
}
