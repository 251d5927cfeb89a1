package dto

import (
	"time"

	"chefhire_backend/internal/models"
)

type UploadResponse struct {
	ID           string    `json:"id"`
	ResumeID     string    `json:"resume_id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUploadResponse(u *models.Upload, url string) *UploadResponse {
	return &UploadResponse{
		ID:           u.ID,
		ResumeID:     u.ResumeID,
		OriginalName: u.OriginalName,
		MimeType:     u.MimeType,
		Size:         u.Size,
		URL:          url,
		CreatedAt:    u.CreatedAt,
	}
}
