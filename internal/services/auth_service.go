package services

import (
	"context"
	"errors"
	"time"

	"chefhire_backend/internal/auth"
	"chefhire_backend/internal/email"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = time.Hour
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	users repositories.UserRepository
	email email.Provider
}

func NewAuthService(users repositories.UserRepository, mail email.Provider) AuthService {
	return &authService{users: users, email: mail}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.UserRoleBasic,
		Status:            models.UserStatusPending,
		VerificationToken: uuid.NewString(),
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Mail delivery must not fail registration.
	if err := s.email.SendWelcome(user.Email, user.Name); err != nil {
		logger.CtxWithError(ctx, "failed to send welcome email", err, "user_id", user.ID)
	}
	if err := s.email.SendVerification(user.Email, user.VerificationToken); err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err, "user_id", user.ID)
	}

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(user)
}

// Refresh rotates the refresh token: the presented token is consumed and a
// new pair is issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.users.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil // already gone, logout is idempotent
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if err := s.users.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint does not leak which emails are registered.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExp = &exp
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.email.SendPasswordReset(user.Email, user.ResetToken); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.users.FindByResetToken(req.Token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// A password change invalidates every open session.
	if err := s.users.DeleteUserRefreshTokens(user.ID); err != nil {
		logger.CtxWithError(ctx, "failed to revoke refresh tokens after password reset", err, "user_id", user.ID)
	}
	return nil
}

func (s *authService) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.users.CreateRefreshToken(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         dto.NewUserResponse(user),
	}, nil
}
