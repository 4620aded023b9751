package services

import (
	"context"

	"github.com/google/uuid"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// UserService defines the interface for user management business logic.
type UserService interface {
	// CreateUser creates a family member; caregivers may be provisioned with a PIN
	CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)

	// GetUser gets a user by ID
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers lists all family members
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// ListUsersByRole lists family members with a role
	ListUsersByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)

	// ChangePIN replaces a caregiver's PIN after verifying the current one
	ChangePIN(ctx context.Context, req domain.ChangePINRequest) error

	// DeleteUser removes a family member
	DeleteUser(ctx context.Context, userID string) error
}

// userService implements UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser creates a family member.
func (s *userService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	user := domain.NewUser(req.Name, req.Role)
	user.ID = uuid.New().String()
	user.Avatar = req.Avatar

	if req.PIN != "" {
		if err := user.SetPIN(req.PIN); err != nil {
			return nil, err
		}
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser gets a user by ID.
func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers lists all family members.
func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// ListUsersByRole lists family members with a role.
func (s *userService) ListUsersByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("INVALID_ROLE", "Unknown user role", map[string]interface{}{
			"value": role,
		})
	}
	return s.userRepo.ListByRole(ctx, role)
}

// ChangePIN replaces a caregiver's PIN after verifying the current one.
func (s *userService) ChangePIN(ctx context.Context, req domain.ChangePINRequest) error {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePIN(req.CurrentPIN, req.NewPIN); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// DeleteUser removes a family member.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.Delete(ctx, userID)
}
