package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/auth"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/user"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/ratelimit"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	limiter ratelimit.LoginLimiter
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, limiter ratelimit.LoginLimiter) auth.Service {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		limiter:        limiter,
	}
}

// Login implements auth.Service. The limiter is consulted before any store
// access so a blocked identity cannot keep probing which emails exist.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	key := ratelimit.NormalizeKey(req.Email)
	if !a.limiter.Allow(key) {
		return auth.LoginResponse{}, auth.ErrTooManyAttempts
	}

	userData, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			a.limiter.Fail(key)
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		a.limiter.Fail(key)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		a.limiter.Fail(key)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	a.limiter.Reset(key)

	var resp auth.LoginResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return resp, nil
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if a.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	var resp auth.RefreshResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	a.RevokeToken(refreshToken)
	return nil
}
