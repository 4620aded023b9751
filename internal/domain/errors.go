package domain

import "fmt"

// ErrorType represents the type of domain error
type ErrorType string

const (
	// ValidationError represents validation failures
	ValidationError ErrorType = "VALIDATION_ERROR"
	// NotFoundError represents resource not found
	NotFoundError ErrorType = "NOT_FOUND_ERROR"
	// ConflictError represents resource conflicts
	ConflictError ErrorType = "CONFLICT_ERROR"
	// PreconditionError represents business precondition failures
	PreconditionError ErrorType = "PRECONDITION_ERROR"
	// AuthenticationError represents authentication failures
	AuthenticationError ErrorType = "AUTHENTICATION_ERROR"
	// InternalError represents internal system errors
	InternalError ErrorType = "INTERNAL_ERROR"
)

// Well-known error codes used across the service layer.
const (
	CodeTaskNotFound           = "TASK_NOT_FOUND"
	CodeTaskAlreadyCompleted   = "TASK_ALREADY_COMPLETED"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeRewardNotFound         = "REWARD_NOT_FOUND"
	CodeAchievementNotFound    = "ACHIEVEMENT_NOT_FOUND"
	CodeRewardUnavailable      = "REWARD_UNAVAILABLE"
	CodeRewardRequiresApproval = "REWARD_REQUIRES_APPROVAL"
	CodeInsufficientTokens     = "INSUFFICIENT_TOKENS"
	CodeCannotDeletePredefined = "CANNOT_DELETE_PREDEFINED_REWARD"
	CodeRepositoryFailure      = "REPOSITORY_FAILURE"
)

// DomainError represents a domain-specific error with additional context
type DomainError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	domainErr, ok := err.(*DomainError)
	return ok && domainErr.Code == code
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string, details map[string]interface{}) *DomainError {
	return &DomainError{
		Type:    ValidationError,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{
		Type:    NotFoundError,
		Code:    code,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(code, message string) *DomainError {
	return &DomainError{
		Type:    ConflictError,
		Code:    code,
		Message: message,
	}
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(code, message string, details map[string]interface{}) *DomainError {
	return &DomainError{
		Type:    PreconditionError,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(code, message string) *DomainError {
	return &DomainError{
		Type:    AuthenticationError,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(code, message string, cause error) *DomainError {
	return &DomainError{
		Type:    InternalError,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInsufficientTokensError reports a failed affordability check, carrying
// the shortfall so callers can render it.
func NewInsufficientTokensError(required, available int) *DomainError {
	return NewPreconditionError(CodeInsufficientTokens,
		fmt.Sprintf("Need %d tokens but only %d available", required, available),
		map[string]interface{}{
			"required":  required,
			"available": available,
		})
}
