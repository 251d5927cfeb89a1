package services

import (
	"context"
	"errors"

	"chefhire_backend/internal/cache"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	// Admin operations
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.PaginatedUsers, error)
	ChangeRole(ctx context.Context, adminID, targetID string, role models.UserRole) error
	SetChef(ctx context.Context, targetID string, chef bool) error
	SetStatus(ctx context.Context, adminID, targetID string, status models.UserStatus) error
	DeleteUser(ctx context.Context, adminID, targetID string) error
}

// searchInvalidator is the slice of the search cache the user service
// needs: admin mutations that change which resumes are listed must drop
// cached pages.
type searchInvalidator interface {
	Invalidate(ctx context.Context) error
}

type userService struct {
	users       repositories.UserRepository
	userCache   *cache.UserCache
	searchCache searchInvalidator
}

func NewUserService(users repositories.UserRepository, userCache *cache.UserCache, searchCache *cache.SearchCache) UserService {
	s := &userService{users: users, userCache: userCache}
	if searchCache != nil {
		s.searchCache = searchCache
	}
	return s
}

// GetMe serves the current-user record, preferring the 24h cache.
func (s *userService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if s.userCache != nil {
		var cached dto.UserResponse
		hit, err := s.userCache.Get(ctx, userID, &cached)
		if err != nil {
			logger.CtxWithError(ctx, "user cache read failed", err, "user_id", userID)
		} else if hit {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	if s.userCache != nil {
		if err := s.userCache.Set(ctx, userID, resp); err != nil {
			logger.CtxWithError(ctx, "user cache write failed", err, "user_id", userID)
		}
	}
	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.dropCached(ctx, userID)
	return dto.NewUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.PaginatedUsers, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := s.users.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRole(req.Role),
		Status:   models.UserStatus(req.Status),
		Chef:     req.Chef,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, dto.NewUserResponse(&users[i]))
	}

	return &dto.PaginatedUsers{
		Data:       data,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *userService) ChangeRole(ctx context.Context, adminID, targetID string, role models.UserRole) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}
	if !models.ValidRole(role) {
		return apperrors.ErrInvalidUserRole
	}

	if err := s.users.UpdateRole(targetID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.dropCached(ctx, targetID)
	return nil
}

func (s *userService) SetChef(ctx context.Context, targetID string, chef bool) error {
	if err := s.users.SetChefStatus(targetID, chef); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.dropCached(ctx, targetID)
	s.dropSearch(ctx)
	return nil
}

func (s *userService) SetStatus(ctx context.Context, adminID, targetID string, status models.UserStatus) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.users.UpdateStatus(targetID, status); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	s.dropCached(ctx, targetID)
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, adminID, targetID string) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.users.Delete(targetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	// The cascade removed the target's resume, so cached search pages
	// are stale too.
	s.dropCached(ctx, targetID)
	s.dropSearch(ctx)
	return nil
}

func (s *userService) dropCached(ctx context.Context, userID string) {
	if s.userCache == nil {
		return
	}
	if err := s.userCache.Delete(ctx, userID); err != nil {
		logger.CtxWithError(ctx, "user cache invalidation failed", err, "user_id", userID)
	}
}

func (s *userService) dropSearch(ctx context.Context) {
	if s.searchCache == nil {
		return
	}
	if err := s.searchCache.Invalidate(ctx); err != nil {
		logger.CtxWithError(ctx, "search cache invalidation failed", err)
	}
}
