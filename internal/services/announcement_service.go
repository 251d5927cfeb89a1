package services

import (
	"context"
	"errors"
	"time"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"
)

type AnnouncementService interface {
	// GetActive returns the single announcement currently shown to clients,
	// or nil when no window covers now.
	GetActive(ctx context.Context) (*dto.AnnouncementResponse, error)

	// Admin operations
	List(ctx context.Context, page, pageSize int) ([]*dto.AnnouncementResponse, dto.Pagination, error)
	Create(ctx context.Context, adminID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	announcements repositories.AnnouncementRepository
}

func NewAnnouncementService(announcements repositories.AnnouncementRepository) AnnouncementService {
	return &announcementService{announcements: announcements}
}

func (s *announcementService) GetActive(ctx context.Context) (*dto.AnnouncementResponse, error) {
	a, err := s.announcements.FindCurrent(time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAnnouncementResponse(a), nil
}

func (s *announcementService) List(ctx context.Context, page, pageSize int) ([]*dto.AnnouncementResponse, dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	items, total, err := s.announcements.FindAll(page, pageSize)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}

	out := make([]*dto.AnnouncementResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewAnnouncementResponse(&items[i]))
	}
	return out, dto.NewPagination(page, pageSize, total), nil
}

func (s *announcementService) Create(ctx context.Context, adminID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrAnnouncementWindow
	}

	a := &models.Announcement{
		Title:       req.Title,
		Body:        req.Body,
		Type:        models.AnnouncementType(req.Type),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Priority:    req.Priority,
		Dismissible: true,
		CreatedBy:   adminID,
	}
	if req.Dismissible != nil {
		a.Dismissible = *req.Dismissible
	}

	if err := s.announcements.Create(a); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAnnouncementResponse(a), nil
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrAnnouncementWindow
	}

	a, err := s.announcements.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	a.Title = req.Title
	a.Body = req.Body
	a.Type = models.AnnouncementType(req.Type)
	a.StartDate = req.StartDate
	a.EndDate = req.EndDate
	a.Priority = req.Priority
	if req.Dismissible != nil {
		a.Dismissible = *req.Dismissible
	}

	if err := s.announcements.Update(a); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAnnouncementResponse(a), nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if err := s.announcements.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
