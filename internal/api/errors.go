package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tokentasks/internal/domain"
)

// ErrorSanitizer provides safe error handling that prevents information
// disclosure: clients get the typed failure, detailed causes stay in the
// server log keyed by a correlation ID.
type ErrorSanitizer struct {
	logger *slog.Logger
}

// NewErrorSanitizer creates a new error sanitizer with structured logging.
func NewErrorSanitizer(logger *slog.Logger) *ErrorSanitizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorSanitizer{logger: logger}
}

// SanitizedErrorResponse writes the error to the client, logging the detailed
// cause server-side with a correlation ID.
func (s *ErrorSanitizer) SanitizedErrorResponse(c *gin.Context, err error) {
	correlationID := s.getOrCreateCorrelationID(c)

	var domainErr *domain.DomainError
	isDomainError := errors.As(err, &domainErr)

	s.logError(c, err, correlationID, domainErr)

	statusCode, response := s.clientResponse(domainErr, isDomainError, correlationID)
	c.JSON(statusCode, response)
}

func (s *ErrorSanitizer) getOrCreateCorrelationID(c *gin.Context) string {
	if id, exists := c.Get("correlation_id"); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	if id := c.GetHeader("X-Correlation-ID"); id != "" {
		c.Set("correlation_id", id)
		return id
	}

	correlationID := uuid.New().String()
	c.Set("correlation_id", correlationID)
	c.Header("X-Correlation-ID", correlationID)
	return correlationID
}

func (s *ErrorSanitizer) logError(c *gin.Context, err error, correlationID string, domainErr *domain.DomainError) {
	attrs := []any{
		"correlation_id", correlationID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err.Error(),
	}
	if domainErr != nil {
		attrs = append(attrs, "error_type", string(domainErr.Type), "error_code", domainErr.Code)
	}

	if domainErr != nil && domainErr.Type != domain.InternalError {
		// Expected business failures log at info; they are part of normal flow.
		s.logger.Info("request failed", attrs...)
		return
	}
	s.logger.Error("request failed", attrs...)
}

func (s *ErrorSanitizer) clientResponse(
	domainErr *domain.DomainError,
	isDomainError bool,
	correlationID string,
) (int, gin.H) {
	if !isDomainError || domainErr.Type == domain.InternalError {
		// Never leak internal causes to clients.
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"type":           string(domain.InternalError),
				"code":           "INTERNAL_ERROR",
				"message":        "An internal error occurred",
				"correlation_id": correlationID,
			},
		}
	}

	response := gin.H{
		"success": false,
		"error": gin.H{
			"type":           string(domainErr.Type),
			"code":           domainErr.Code,
			"message":        domainErr.Message,
			"correlation_id": correlationID,
		},
	}
	if len(domainErr.Details) > 0 {
		response["error"].(gin.H)["details"] = domainErr.Details
	}
	return statusCodeFor(domainErr.Type), response
}

func statusCodeFor(errorType domain.ErrorType) int {
	switch errorType {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.NotFoundError:
		return http.StatusNotFound
	case domain.ConflictError:
		return http.StatusConflict
	case domain.PreconditionError:
		return http.StatusUnprocessableEntity
	case domain.AuthenticationError:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
