package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentasks/internal/domain"
	"tokentasks/internal/repository"
	"tokentasks/internal/services"
)

// testSecurityConfig satisfies config.SecurityConfig with fixed values.
type testSecurityConfig struct {
	secret     string
	expiration time.Duration
}

func (c testSecurityConfig) GetJWTSecret() string                { return c.secret }
func (c testSecurityConfig) GetSessionExpiration() time.Duration { return c.expiration }

func newAuthFixture(t *testing.T) (services.AuthService, repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	cfg := testSecurityConfig{
		secret:     "test-secret-test-secret-test-secret",
		expiration: 30 * time.Minute,
	}
	return services.NewAuthService(userRepo, cfg), userRepo
}

func seedCaregiver(t *testing.T, userRepo repository.UserRepository, id, pin string) {
	t.Helper()
	user := domain.NewUser("Alex", domain.CaregiverRole)
	user.ID = id
	require.NoError(t, user.SetPIN(pin))
	require.NoError(t, userRepo.Create(context.Background(), user))
}

func TestAuthService_VerifyPIN(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthFixture(t)
	seedCaregiver(t, userRepo, "caregiver-1", "1234")

	session, err := service.VerifyPIN(ctx, domain.VerifyPINRequest{
		UserID: "caregiver-1",
		PIN:    "1234",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// The issued token round-trips through validation.
	user, err := service.ValidateSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "caregiver-1", user.ID)
}

func TestAuthService_VerifyPIN_WrongDigits(t *testing.T) {
	service, userRepo := newAuthFixture(t)
	seedCaregiver(t, userRepo, "caregiver-1", "1234")

	_, err := service.VerifyPIN(context.Background(), domain.VerifyPINRequest{
		UserID: "caregiver-1",
		PIN:    "4321",
	})
	require.Error(t, err)

	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.AuthenticationError, domainErr.Type)
}

func TestAuthService_VerifyPIN_ChildRejected(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthFixture(t)

	child := domain.NewUser("Riley", domain.ChildRole)
	child.ID = "child-1"
	require.NoError(t, userRepo.Create(ctx, child))

	_, err := service.VerifyPIN(ctx, domain.VerifyPINRequest{
		UserID: "child-1",
		PIN:    "1234",
	})
	assert.Error(t, err)
}

func TestAuthService_VerifyPIN_NoPINConfigured(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthFixture(t)

	caregiver := domain.NewUser("Alex", domain.CaregiverRole)
	caregiver.ID = "caregiver-1"
	require.NoError(t, userRepo.Create(ctx, caregiver))

	_, err := service.VerifyPIN(ctx, domain.VerifyPINRequest{
		UserID: "caregiver-1",
		PIN:    "1234",
	})
	assert.Error(t, err)
}

func TestAuthService_ValidateSession_Garbage(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.ValidateSession(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestAuthService_ValidateSession_WrongSecret(t *testing.T) {
	ctx := context.Background()
	userRepo := repository.NewMemoryUserRepository()
	seedCaregiver(t, userRepo, "caregiver-1", "1234")

	issuer := services.NewAuthService(userRepo, testSecurityConfig{
		secret:     "issuer-secret-issuer-secret-issuer",
		expiration: 30 * time.Minute,
	})
	validator := services.NewAuthService(userRepo, testSecurityConfig{
		secret:     "other-secret-other-secret-other-pad",
		expiration: 30 * time.Minute,
	})

	session, err := issuer.VerifyPIN(ctx, domain.VerifyPINRequest{
		UserID: "caregiver-1",
		PIN:    "1234",
	})
	require.NoError(t, err)

	_, err = validator.ValidateSession(ctx, session.Token)
	assert.Error(t, err)
}
