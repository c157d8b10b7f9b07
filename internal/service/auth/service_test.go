package auth

import (
	"context"
	"testing"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/auth"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/user"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testPassword   = "password123"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (auth.Service, *fakeUserRepo, jwt.Service) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	companyID := "company-1"

	testUser := user.User{
		ID:           "user-1",
		CompanyID:    &companyID,
		Email:        "ana@example.com",
		PasswordHash: &hashStr,
		FullName:     "Ana Torres",
		Role:         user.RoleManager,
	}

	repo := &fakeUserRepo{
		byEmail: map[string]user.User{testUser.Email: testUser},
		byID:    map[string]user.User{testUser.ID: testUser},
	}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	limiter := ratelimit.NewMemoryLimiter(5, 15*time.Minute, 15*time.Minute)

	return NewAuthService(repo, jwtService, limiter), repo, jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_BlockedAfterRepeatedFailures(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "attempt %d", i+1)
	}

	// Even the correct password is rejected while the identity is blocked.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrTooManyAttempts)
}

func TestLogin_CounterKeyIsNormalized(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	// Case variations of the same identity share the counter.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "Ana@Example.COM",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrTooManyAttempts)
}

func TestLogin_SuccessResetsCounter(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 4; i++ {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	// The slate is clean again after the successful login.
	for i := 0; i < 4; i++ {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}
}

func TestLogin_RejectsInvalidRequest(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: ""})
	require.Error(t, err)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_RejectsRevokedToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_EmptyTokenIsInvalid(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Logout(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
