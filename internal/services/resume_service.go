package services

import (
	"context"
	"errors"
	"time"

	"chefhire_backend/internal/cache"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/masking"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/internal/storage"
	"chefhire_backend/pkg/apperrors"
)

type ResumeService interface {
	Create(ctx context.Context, userID string, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error)
	GetOwn(ctx context.Context, userID string) (*dto.ResumeResponse, error)
	GetByID(ctx context.Context, viewerRole models.UserRole, id string) (*dto.ResumeResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error)
	Delete(ctx context.Context, userID string, isAdmin bool, id string) error
	SetVerified(ctx context.Context, id string, verified bool) error
}

type resumeService struct {
	resumes     repositories.ResumeRepository
	searchCache *cache.SearchCache
	userCache   *cache.UserCache
	store       storage.Storage
	signedTTL   time.Duration
}

func NewResumeService(
	resumes repositories.ResumeRepository,
	searchCache *cache.SearchCache,
	userCache *cache.UserCache,
	store storage.Storage,
	signedTTL time.Duration,
) ResumeService {
	return &resumeService{
		resumes:     resumes,
		searchCache: searchCache,
		userCache:   userCache,
		store:       store,
		signedTTL:   signedTTL,
	}
}

func (s *resumeService) Create(ctx context.Context, userID string, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error) {
	resume := &models.Resume{
		UserID:          userID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		Pincode:         req.Pincode,
		Profession:      req.Profession,
		ExperienceYears: req.ExperienceYears,
		Cuisines:        req.Cuisines,
		CurrentCTC:      req.CurrentCTC,
		ExpectedCTC:     req.ExpectedCTC,
		WorkType:        models.WorkType(req.WorkType),
		JoiningIn:       req.JoiningIn,
		OpenToTraining:  req.OpenToTraining,
	}

	if err := s.resumes.Create(resume); err != nil {
		if errors.Is(err, repositories.ErrResumeAlreadyExists) {
			return nil, apperrors.ErrResumeAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx, userID)
	return s.respond(ctx, resume, models.UserRoleAdmin), nil
}

// GetOwn returns the caller's resume unmasked. Owners always see their own
// contact details.
func (s *resumeService) GetOwn(ctx context.Context, userID string) (*dto.ResumeResponse, error) {
	resume, err := s.resumes.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.respond(ctx, resume, models.UserRoleAdmin), nil
}

func (s *resumeService) GetByID(ctx context.Context, viewerRole models.UserRole, id string) (*dto.ResumeResponse, error) {
	resume, err := s.resumes.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.respond(ctx, resume, viewerRole), nil
}

func (s *resumeService) Update(ctx context.Context, userID, id string, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error) {
	resume, err := s.resumes.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if resume.UserID != userID {
		return nil, apperrors.NewForbiddenError("You can only edit your own resume")
	}

	resume.Name = req.Name
	resume.Email = req.Email
	resume.Phone = req.Phone
	resume.City = req.City
	resume.State = req.State
	resume.Country = req.Country
	resume.Pincode = req.Pincode
	resume.Profession = req.Profession
	resume.ExperienceYears = req.ExperienceYears
	resume.Cuisines = req.Cuisines
	resume.CurrentCTC = req.CurrentCTC
	resume.ExpectedCTC = req.ExpectedCTC
	resume.WorkType = models.WorkType(req.WorkType)
	resume.JoiningIn = req.JoiningIn
	resume.OpenToTraining = req.OpenToTraining

	if err := s.resumes.Update(resume); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidate(ctx, userID)
	return s.respond(ctx, resume, models.UserRoleAdmin), nil
}

func (s *resumeService) Delete(ctx context.Context, userID string, isAdmin bool, id string) error {
	resume, err := s.resumes.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !isAdmin && resume.UserID != userID {
		return apperrors.NewForbiddenError("You can only delete your own resume")
	}

	if err := s.resumes.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	// The stored PDF outlives the row only until here.
	if s.store != nil && resume.File != nil {
		if err := s.store.Delete(ctx, resume.File.Path); err != nil {
			logger.CtxWithError(ctx, "failed to delete resume file", err, "resume_id", id)
		}
	}

	s.invalidate(ctx, resume.UserID)
	return nil
}

func (s *resumeService) SetVerified(ctx context.Context, id string, verified bool) error {
	if err := s.resumes.SetVerified(id, verified); err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.invalidate(ctx, "")
	return nil
}

// respond maps a resume, applies role-based contact masking, and attaches a
// signed file URL when a PDF is on record.
func (s *resumeService) respond(ctx context.Context, resume *models.Resume, viewerRole models.UserRole) *dto.ResumeResponse {
	resp := dto.NewResumeResponse(resume)
	resp.Email = masking.Email(resp.Email, viewerRole)
	resp.Phone = masking.Phone(resp.Phone, viewerRole)

	if s.store != nil && resume.File != nil {
		url, err := s.store.GetSignedURL(ctx, resume.File.Path, s.signedTTL)
		if err != nil {
			logger.CtxWithError(ctx, "failed to sign file url", err, "resume_id", resume.ID)
		} else {
			resp.FileURL = url
		}
	}
	return resp
}

// invalidate drops cached search pages and, when known, the owner's cached
// user record (the chef flag may have flipped).
func (s *resumeService) invalidate(ctx context.Context, userID string) {
	if s.searchCache != nil {
		if err := s.searchCache.Invalidate(ctx); err != nil {
			logger.CtxWithError(ctx, "search cache invalidation failed", err)
		}
	}
	if s.userCache != nil && userID != "" {
		if err := s.userCache.Delete(ctx, userID); err != nil {
			logger.CtxWithError(ctx, "user cache invalidation failed", err, "user_id", userID)
		}
	}
}
