package dto

import (
	"time"

	"chefhire_backend/internal/models"
)

type CreateAnnouncementRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Body        string    `json:"body" validate:"max=2000"`
	Type        string    `json:"type" validate:"required,is-announcement-type"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Priority    int       `json:"priority" validate:"min=0,max=100"`
	Dismissible *bool     `json:"dismissible"`
}

type UpdateAnnouncementRequest = CreateAnnouncementRequest

type AnnouncementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Type        string    `json:"type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Priority    int       `json:"priority"`
	Dismissible bool      `json:"dismissible"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAnnouncementResponse(a *models.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Type:        string(a.Type),
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		Priority:    a.Priority,
		Dismissible: a.Dismissible,
		CreatedAt:   a.CreatedAt,
	}
}
