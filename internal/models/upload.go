package models

import "time"

// Upload records a stored resume PDF. The object itself lives in the
// configured storage backend; Path is the storage key.
type Upload struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeID string `gorm:"type:uuid;not null;index" json:"resume_id"`
	Path     string `gorm:"not null" json:"-"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`

	OriginalName    string     `gorm:"column:original_name" json:"original_name"`
	StorageProvider string     `gorm:"column:storage_provider;default:'local'" json:"-"`
	LastAccessedAt  *time.Time `gorm:"column:last_accessed_at" json:"-"`
	DownloadCount   int        `gorm:"column:download_count;default:0" json:"-"`
}
