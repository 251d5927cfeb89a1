package dto

import (
	"time"

	"chefhire_backend/internal/models"
)

type CreateResumeRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`

	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode" validate:"omitempty,max=10"`

	Profession      string   `json:"profession" validate:"required"`
	ExperienceYears int      `json:"experience_years" validate:"min=0,max=60"`
	Cuisines        []string `json:"cuisines" validate:"max=20"`
	CurrentCTC      float64  `json:"current_ctc" validate:"min=0"`
	ExpectedCTC     float64  `json:"expected_ctc" validate:"min=0"`

	WorkType       string `json:"work_type" validate:"omitempty,is-work-type"`
	JoiningIn      string `json:"joining_in"`
	OpenToTraining bool   `json:"open_to_training"`
}

// UpdateResumeRequest mirrors the create shape; all fields are re-submitted.
type UpdateResumeRequest = CreateResumeRequest

// ResumeResponse is the API shape of a resume. Contact fields arrive
// masked or raw depending on the viewer's role.
type ResumeResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Pincode string `json:"pincode,omitempty"`

	Profession      string   `json:"profession"`
	ExperienceYears int      `json:"experience_years"`
	Cuisines        []string `json:"cuisines,omitempty"`
	CurrentCTC      float64  `json:"current_ctc"`
	ExpectedCTC     float64  `json:"expected_ctc"`

	WorkType       models.WorkType `json:"work_type,omitempty"`
	JoiningIn      string          `json:"joining_in,omitempty"`
	OpenToTraining bool            `json:"open_to_training"`

	Verified  bool      `json:"verified"`
	FileURL   string    `json:"file_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResumeResponse maps a model without masking. Masking is applied by the
// service layer, which knows the viewer's role.
func NewResumeResponse(r *models.Resume) *ResumeResponse {
	return &ResumeResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		Pincode:         r.Pincode,
		Profession:      r.Profession,
		ExperienceYears: r.ExperienceYears,
		Cuisines:        r.Cuisines,
		CurrentCTC:      r.CurrentCTC,
		ExpectedCTC:     r.ExpectedCTC,
		WorkType:        r.WorkType,
		JoiningIn:       r.JoiningIn,
		OpenToTraining:  r.OpenToTraining,
		Verified:        r.Verified,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
