package repositories

import (
	"errors"
	"time"

	"chefhire_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	Update(a *models.Announcement) error
	Delete(id string) error
	FindByID(id string) (*models.Announcement, error)
	FindAll(page, pageSize int) ([]models.Announcement, int64, error)
	// FindCurrent returns the single highest-priority announcement whose
	// window covers now, or ErrAnnouncementNotFound.
	FindCurrent(now time.Time) (*models.Announcement, error)
}

type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

func (r *AnnouncementRepositoryImpl) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r *AnnouncementRepositoryImpl) Update(a *models.Announcement) error {
	result := r.db.Model(&models.Announcement{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"title":       a.Title,
		"body":        a.Body,
		"type":        a.Type,
		"start_date":  a.StartDate,
		"end_date":    a.EndDate,
		"priority":    a.Priority,
		"dismissible": a.Dismissible,
		"updated_at":  time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) FindByID(id string) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepositoryImpl) FindAll(page, pageSize int) ([]models.Announcement, int64, error) {
	var total int64
	if err := r.db.Model(&models.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var items []models.Announcement
	err := r.db.Order("priority DESC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *AnnouncementRepositoryImpl) FindCurrent(now time.Time) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.Where("start_date <= ? AND end_date >= ?", now, now).
		Order("priority DESC, created_at DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}
