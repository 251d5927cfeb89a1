package services

import (
	"context"
	"testing"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedResumeRepo keeps resumes in memory and mimics the one-per-user rule.
type storedResumeRepo struct {
	byID    map[string]*models.Resume
	deleted []string
}

func newStoredResumeRepo(resumes ...*models.Resume) *storedResumeRepo {
	f := &storedResumeRepo{byID: map[string]*models.Resume{}}
	for _, r := range resumes {
		f.byID[r.ID] = r
	}
	return f
}

func (f *storedResumeRepo) FindByID(id string) (*models.Resume, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrResumeNotFound
}

func (f *storedResumeRepo) FindByUserID(userID string) (*models.Resume, error) {
	for _, r := range f.byID {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, repositories.ErrResumeNotFound
}

func (f *storedResumeRepo) Create(resume *models.Resume) error {
	if _, err := f.FindByUserID(resume.UserID); err == nil {
		return repositories.ErrResumeAlreadyExists
	}
	if resume.ID == "" {
		resume.ID = "resume-" + resume.UserID
	}
	f.byID[resume.ID] = resume
	return nil
}

func (f *storedResumeRepo) Update(resume *models.Resume) error {
	if _, ok := f.byID[resume.ID]; !ok {
		return repositories.ErrResumeNotFound
	}
	f.byID[resume.ID] = resume
	return nil
}

func (f *storedResumeRepo) Delete(id string) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrResumeNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *storedResumeRepo) SetVerified(id string, verified bool) error {
	r, ok := f.byID[id]
	if !ok {
		return repositories.ErrResumeNotFound
	}
	r.Verified = verified
	return nil
}

func (f *storedResumeRepo) Search(c repositories.ResumeSearchCriteria) ([]models.Resume, int64, error) {
	return nil, 0, nil
}

func (f *storedResumeRepo) FindAll() ([]models.Resume, error) { return nil, nil }

func ownedResume(id, userID string) *models.Resume {
	r := &models.Resume{
		UserID:     userID,
		Name:       "Asha",
		Email:      "asha@test.com",
		Phone:      "9876543210",
		City:       "Mumbai",
		Profession: "chef",
	}
	r.ID = id
	return r
}

func createRequest() *dto.CreateResumeRequest {
	return &dto.CreateResumeRequest{
		Name:       "Asha",
		Email:      "asha@test.com",
		City:       "Mumbai",
		Profession: "chef",
	}
}

func TestResumeCreateOncePerUser(t *testing.T) {
	repo := newStoredResumeRepo()
	svc := NewResumeService(repo, nil, nil, nil, 0)

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, apperrors.ErrResumeAlreadyExists)
}

func TestResumeUpdateOwnership(t *testing.T) {
	repo := newStoredResumeRepo(ownedResume("resume-1", "user-1"))
	svc := NewResumeService(repo, nil, nil, nil, 0)

	req := createRequest()
	req.City = "Delhi"

	_, err := svc.Update(context.Background(), "intruder", "resume-1", req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)

	resp, err := svc.Update(context.Background(), "user-1", "resume-1", req)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", resp.City)
}

func TestResumeDeleteOwnership(t *testing.T) {
	repo := newStoredResumeRepo(ownedResume("resume-1", "user-1"))
	svc := NewResumeService(repo, nil, nil, nil, 0)

	err := svc.Delete(context.Background(), "intruder", false, "resume-1")
	require.Error(t, err)
	assert.Empty(t, repo.deleted)

	// Admins may delete any resume.
	err = svc.Delete(context.Background(), "admin-1", true, "resume-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"resume-1"}, repo.deleted)
}

func TestResumeGetByIDMasksForBasicViewer(t *testing.T) {
	repo := newStoredResumeRepo(ownedResume("resume-1", "user-1"))
	svc := NewResumeService(repo, nil, nil, nil, 0)

	resp, err := svc.GetByID(context.Background(), models.UserRoleBasic, "resume-1")
	require.NoError(t, err)
	assert.Equal(t, "as**@test.com", resp.Email)
	assert.Equal(t, "98******10", resp.Phone)
}

func TestResumeGetOwnIsUnmasked(t *testing.T) {
	repo := newStoredResumeRepo(ownedResume("resume-1", "user-1"))
	svc := NewResumeService(repo, nil, nil, nil, 0)

	resp, err := svc.GetOwn(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "asha@test.com", resp.Email)
	assert.Equal(t, "9876543210", resp.Phone)
}
