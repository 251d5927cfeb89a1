package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"chefhire_backend/internal/config"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/internal/storage"
	"chefhire_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	// AttachResumePDF validates and stores a PDF against the caller's resume.
	// resumeID, when given, must match the caller's own resume.
	AttachResumePDF(ctx context.Context, userID, resumeID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadResponse, error)

	// Download streams the file attached to a resume after an
	// ownership / role check.
	Download(ctx context.Context, viewerRole models.UserRole, viewerID, resumeID string) (io.ReadCloser, *models.Upload, error)
}

type uploadService struct {
	uploads repositories.UploadRepository
	resumes repositories.ResumeRepository
	store   storage.Storage
	cfg     *config.Config
}

func NewUploadService(
	uploads repositories.UploadRepository,
	resumes repositories.ResumeRepository,
	store storage.Storage,
	cfg *config.Config,
) UploadService {
	return &uploadService{uploads: uploads, resumes: resumes, store: store, cfg: cfg}
}

func (s *uploadService) AttachResumePDF(ctx context.Context, userID, resumeID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadResponse, error) {
	if size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !s.allowedType(contentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	resume, err := s.resumes.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotAChef
		}
		return nil, apperrors.InternalError(err)
	}
	if resumeID != "" && resumeID != resume.ID {
		return nil, apperrors.NewForbiddenError("File can only be attached to your own resume")
	}

	path := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), filepath.Ext(filename))
	if err := s.store.Save(ctx, path, reader, size, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// One file per resume: drop any previous row, keep the latest.
	if err := s.uploads.DeleteByResumeID(resume.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:          userID,
		ResumeID:        resume.ID,
		Path:            path,
		MimeType:        contentType,
		Size:            size,
		OriginalName:    filename,
		StorageProvider: s.cfg.Storage.Type,
	}
	if err := s.uploads.Create(upload); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetSignedURL(ctx, path, s.signedTTL())
	if err != nil {
		url = ""
	}

	return dto.NewUploadResponse(upload, url), nil
}

func (s *uploadService) Download(ctx context.Context, viewerRole models.UserRole, viewerID, resumeID string) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.uploads.FindByResumeID(resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	// Owners always get their file; everyone else needs a paid role.
	if upload.UserID != viewerID && viewerRole != models.UserRolePro && viewerRole != models.UserRoleAdmin {
		return nil, nil, apperrors.NewForbiddenError("Upgrade required to download resumes")
	}

	rc, err := s.store.Get(ctx, upload.Path)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	if err := s.uploads.TouchAccess(upload.ID); err != nil {
		logger.CtxWithError(ctx, "failed to record download", err, "upload_id", upload.ID)
	}

	return rc, upload, nil
}

func (s *uploadService) signedTTL() time.Duration {
	return time.Duration(s.cfg.Upload.SignedURLTTL) * time.Minute
}

func (s *uploadService) allowedType(contentType string) bool {
	for _, t := range s.cfg.Upload.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
