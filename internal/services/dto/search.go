package dto

// SearchResumesRequest carries the supported filter combination. Experience
// is a coarse bucket the service translates into a numeric range.
type SearchResumesRequest struct {
	Page       int    `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Search     string `form:"search" json:"search" validate:"omitempty,max=100"`
	Experience string `form:"experience" json:"experience" validate:"omitempty,is-experience-bucket"`
	Profession string `form:"profession" json:"profession" validate:"omitempty,max=50"`
}

// Pagination is the metadata block returned alongside every page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// PaginatedResumes is the search response envelope.
type PaginatedResumes struct {
	Data       []*ResumeResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// PaginatedUsers is the admin user-listing envelope.
type PaginatedUsers struct {
	Data       []*UserResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// NewPagination computes the metadata for a page. TotalPages is
// ceil(total/limit); HasMore is false on (and past) the last page.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
