package services

import (
	"context"
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

const defaultSearchLimit = 12

type SearchService interface {
	Search(ctx context.Context, viewerRole models.UserRole, req *dto.SearchResumesRequest) (*dto.PaginatedResumes, error)
}

type searchService struct {
	resumes     repositories.ResumeRepository
	searchCache *cache.SearchCache
	store       storage.Storage
	signedTTL   time.Duration
}

func NewSearchService(
	resumes repositories.ResumeRepository,
	searchCache *cache.SearchCache,
	store storage.Storage,
	signedTTL time.Duration,
) SearchService {
	return &searchService{
		resumes:     resumes,
		searchCache: searchCache,
		store:       store,
		signedTTL:   signedTTL,
	}
}

// experienceRange translates a coarse bucket into a numeric year range.
// Unknown buckets and "all" leave both bounds open.
func experienceRange(bucket string) (minExp, maxExp *int) {
	intp := func(v int) *int { return &v }

	switch bucket {
	case "fresher":
		return nil, intp(2) // < 3 years
	case "medium":
		return intp(3), intp(6)
	case "high":
		return intp(6), intp(10)
	case "pro":
		return intp(10), nil
	default:
		return nil, nil
	}
}

// Search runs the filtered resume search. Page-1 responses for empty
// free-text queries are served from and written to the Redis cache; the
// cached payload is stored unmasked and masking is applied per viewer.
func (s *searchService) Search(ctx context.Context, viewerRole models.UserRole, req *dto.SearchResumesRequest) (*dto.PaginatedResumes, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}

	var cacheKey string
	useCache := s.searchCache != nil && cache.Cacheable(page, req.Search)
	if useCache {
		cacheKey = s.searchCache.Key(limit, req.Experience, req.Profession)

		var cached dto.PaginatedResumes
		hit, err := s.searchCache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.CtxWithError(ctx, "search cache read failed", err)
		} else if hit {
			maskPage(&cached, viewerRole)
			return &cached, nil
		}
	}

	minExp, maxExp := experienceRange(req.Experience)
	resumes, total, err := s.resumes.Search(repositories.ResumeSearchCriteria{
		Search:     req.Search,
		Profession: req.Profession,
		MinExp:     minExp,
		MaxExp:     maxExp,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]*dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		resp := dto.NewResumeResponse(&resumes[i])
		if s.store != nil && resumes[i].File != nil {
			if url, err := s.store.GetSignedURL(ctx, resumes[i].File.Path, s.signedTTL); err == nil {
				resp.FileURL = url
			}
		}
		data = append(data, resp)
	}

	result := &dto.PaginatedResumes{
		Data:       data,
		Pagination: dto.NewPagination(page, limit, total),
	}

	if useCache {
		if err := s.searchCache.Set(ctx, cacheKey, result); err != nil {
			logger.CtxWithError(ctx, "search cache write failed", err)
		}
	}

	maskPage(result, viewerRole)
	return result, nil
}

func maskPage(page *dto.PaginatedResumes, viewerRole models.UserRole) {
	for _, r := range page.Data {
		r.Email = masking.Email(r.Email, viewerRole)
		r.Phone = masking.Phone(r.Phone, viewerRole)
	}
}
