package repositories

import (
	"errors"
	"time"

	"chefhire_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(upload *models.Upload) error
	FindByResumeID(resumeID string) (*models.Upload, error)
	DeleteByResumeID(resumeID string) error
	TouchAccess(id string) error
}

type UploadRepositoryImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(upload *models.Upload) error {
	return r.db.Create(upload).Error
}

func (r *UploadRepositoryImpl) FindByResumeID(resumeID string) (*models.Upload, error) {
	var upload models.Upload
	err := r.db.Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepositoryImpl) DeleteByResumeID(resumeID string) error {
	return r.db.Where("resume_id = ?", resumeID).Delete(&models.Upload{}).Error
}

// TouchAccess bumps the download counter and last-access time.
func (r *UploadRepositoryImpl) TouchAccess(id string) error {
	now := time.Now()
	return r.db.Model(&models.Upload{}).Where("id = ?", id).Updates(map[string]interface{}{
		"download_count":   gorm.Expr("download_count + 1"),
		"last_accessed_at": &now,
	}).Error
}
