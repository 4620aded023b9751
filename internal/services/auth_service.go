package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tokentasks/internal/config"
	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
)

// CaregiverSession is a short-lived token granting caregiver-mode access
// after a successful PIN check.
type CaregiverSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService gates caregiver mode behind PIN verification.
type AuthService interface {
	// VerifyPIN checks a caregiver's PIN and issues a session token.
	VerifyPIN(ctx context.Context, req domain.VerifyPINRequest) (*CaregiverSession, error)

	// ValidateSession validates a session token and returns the caregiver.
	ValidateSession(ctx context.Context, tokenString string) (*domain.User, error)
}

// SessionClaims represents caregiver session token claims.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// authService implements AuthService interface.
type authService struct {
	userRepo  repository.UserRepository
	config    config.SecurityConfig
	jwtSecret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, cfg config.SecurityConfig) AuthService {
	return &authService{
		userRepo:  userRepo,
		config:    cfg,
		jwtSecret: []byte(cfg.GetJWTSecret()),
	}
}

// VerifyPIN checks a caregiver's PIN and issues a session token.
func (s *authService) VerifyPIN(ctx context.Context, req domain.VerifyPINRequest) (*CaregiverSession, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsCaregiver() {
		return nil, domain.NewAuthenticationError("NOT_CAREGIVER", "Only caregivers can enter caregiver mode")
	}
	if err := user.VerifyPIN(req.PIN); err != nil {
		return nil, err
	}

	session, err := s.generateSession(user)
	if err != nil {
		return nil, domain.NewInternalError("TOKEN_GENERATION_FAILED", "Failed to generate session token", err)
	}
	return session, nil
}

// ValidateSession validates a session token and returns the caregiver.
func (s *authService) ValidateSession(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Invalid or expired session token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewAuthenticationError(domain.CodeUserNotFound, "User not found")
	}
	if !user.IsCaregiver() {
		return nil, domain.NewAuthenticationError("NOT_CAREGIVER", "Session does not belong to a caregiver")
	}
	return user, nil
}

// generateSession creates a signed caregiver session token.
func (s *authService) generateSession(user *domain.User) (*CaregiverSession, error) {
	now := time.Now()
	expiry := now.Add(s.config.GetSessionExpiration())

	claims := &SessionClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "tokentasks",
			Audience:  []string{"tokentasks-caregiver"},
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &CaregiverSession{
		Token:     signed,
		ExpiresAt: expiry,
	}, nil
}

// parseToken parses and validates a session token.
func (s *authService) parseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}
