package services

import (
	"context"
	"testing"
	"time"

	"chefhire_backend/internal/auth"
	"chefhire_backend/internal/email"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authUserRepo extends the shared fake with just enough state for the
// password reset lifecycle.
type authUserRepo struct {
	*fakeUserRepo
	revokedFor []string
}

func (f *authUserRepo) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *authUserRepo) FindByResetToken(token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetToken != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *authUserRepo) DeleteUserRefreshTokens(userID string) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

type recordingEmail struct {
	resetTokens []string
}

func (r *recordingEmail) Send(_ *email.Email) error { return nil }

func (r *recordingEmail) SendVerification(to, token string) error { return nil }

func (r *recordingEmail) SendWelcome(to, name string) error { return nil }

func (r *recordingEmail) SendSubscriptionActivated(to, planName string) error { return nil }

func (r *recordingEmail) SendPasswordReset(to, token string) error {
	r.resetTokens = append(r.resetTokens, token)
	return nil
}

func (r *recordingEmail) Close() error { return nil }

func newAuthFixture(t *testing.T) (AuthService, *authUserRepo, *recordingEmail) {
	t.Helper()

	hash, err := auth.HashPassword("original-pass")
	require.NoError(t, err)

	user := &models.User{
		Name:         "Amit",
		Email:        "amit@example.com",
		PasswordHash: hash,
		Role:         models.UserRoleBasic,
		Status:       models.UserStatusActive,
	}
	user.ID = "user-1"
	repo := &authUserRepo{fakeUserRepo: newFakeUserRepo(user)}
	mail := &recordingEmail{}
	return NewAuthService(repo, mail), repo, mail
}

func TestForgotPasswordStoresTokenAndMails(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	err := svc.ForgotPassword(context.Background(), "amit@example.com")
	require.NoError(t, err)

	user := repo.users["user-1"]
	assert.NotEmpty(t, user.ResetToken)
	require.NotNil(t, user.ResetTokenExp)
	assert.True(t, user.ResetTokenExp.After(time.Now()))

	require.Len(t, mail.resetTokens, 1)
	assert.Equal(t, user.ResetToken, mail.resetTokens[0])
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, mail := newAuthFixture(t)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, mail.resetTokens)
}

func TestResetPasswordHappyPath(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	user := repo.users["user-1"]
	exp := time.Now().Add(30 * time.Minute)
	user.ResetToken = "tok-abc"
	user.ResetTokenExp = &exp
	oldHash := user.PasswordHash

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: "tok-abc", Password: "brand-new-pass"})
	require.NoError(t, err)

	user = repo.users["user-1"]
	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("brand-new-pass", user.PasswordHash))
	assert.Empty(t, user.ResetToken)
	assert.Nil(t, user.ResetTokenExp)
	assert.Contains(t, repo.revokedFor, "user-1")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	user := repo.users["user-1"]
	exp := time.Now().Add(-time.Minute)
	user.ResetToken = "tok-old"
	user.ResetTokenExp = &exp

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: "tok-old", Password: "brand-new-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: "tok-missing", Password: "brand-new-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	user := repo.users["user-1"]
	exp := time.Now().Add(30 * time.Minute)
	user.ResetToken = "tok-abc"
	user.ResetTokenExp = &exp

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: "tok-abc", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	// Token stays usable after a rejected attempt.
	assert.Equal(t, "tok-abc", repo.users["user-1"].ResetToken)
}
