package repositories

import (
	"errors"
	"time"

	"chefhire_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrResumeNotFound      = errors.New("resume not found")
	ErrResumeAlreadyExists = errors.New("resume already exists for this user")
)

// ResumeSearchCriteria is the repository-level filter. The experience bucket
// is already translated into a numeric range by the service layer.
type ResumeSearchCriteria struct {
	Search     string // matched against name, city, email
	Profession string // "" or "all" means no filter
	MinExp     *int
	MaxExp     *int
	Page       int
	Limit      int
}

type ResumeRepository interface {
	FindByID(id string) (*models.Resume, error)
	FindByUserID(userID string) (*models.Resume, error)
	Create(resume *models.Resume) error
	Update(resume *models.Resume) error
	Delete(id string) error
	SetVerified(id string, verified bool) error
	Search(criteria ResumeSearchCriteria) ([]models.Resume, int64, error)
	FindAll() ([]models.Resume, error)
}

type ResumeRepositoryImpl struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &ResumeRepositoryImpl{db: db}
}

func (r *ResumeRepositoryImpl) FindByID(id string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Preload("File").First(&resume, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) FindByUserID(userID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Preload("File").First(&resume, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// Create inserts the resume and flips the owner's chef flag in the same
// transaction: a resume existing and chef=true must never diverge.
func (r *ResumeRepositoryImpl) Create(resume *models.Resume) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Resume
		if err := tx.Where("user_id = ?", resume.UserID).First(&existing).Error; err == nil {
			return ErrResumeAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(resume).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", resume.UserID).
			Updates(map[string]interface{}{"chef": true, "updated_at": time.Now()}).Error
	})
}

func (r *ResumeRepositoryImpl) Update(resume *models.Resume) error {
	result := r.db.Model(&models.Resume{}).Where("id = ?", resume.ID).Updates(map[string]interface{}{
		"name":             resume.Name,
		"email":            resume.Email,
		"phone":            resume.Phone,
		"city":             resume.City,
		"state":            resume.State,
		"country":          resume.Country,
		"pincode":          resume.Pincode,
		"profession":       resume.Profession,
		"experience_years": resume.ExperienceYears,
		"cuisines":         resume.Cuisines,
		"current_ctc":      resume.CurrentCTC,
		"expected_ctc":     resume.ExpectedCTC,
		"work_type":        resume.WorkType,
		"joining_in":       resume.JoiningIn,
		"open_to_training": resume.OpenToTraining,
		"updated_at":       time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// Delete removes the resume, its uploads, and resets the owner's chef flag
// in one transaction. The original implementation did this as two separate
// requests and could leave the flag dangling when the second one failed.
func (r *ResumeRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var resume models.Resume
		if err := tx.First(&resume, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResumeNotFound
			}
			return err
		}

		if err := tx.Where("resume_id = ?", id).Delete(&models.Upload{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&resume).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", resume.UserID).
			Updates(map[string]interface{}{"chef": false, "updated_at": time.Now()}).Error
	})
}

func (r *ResumeRepositoryImpl) SetVerified(id string, verified bool) error {
	result := r.db.Model(&models.Resume{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verified":   verified,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) Search(criteria ResumeSearchCriteria) ([]models.Resume, int64, error) {
	query := r.db.Model(&models.Resume{})

	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if criteria.Profession != "" && criteria.Profession != "all" {
		query = query.Where("profession = ?", criteria.Profession)
	}
	if criteria.MinExp != nil {
		query = query.Where("experience_years >= ?", *criteria.MinExp)
	}
	if criteria.MaxExp != nil {
		query = query.Where("experience_years <= ?", *criteria.MaxExp)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	limit := criteria.Limit
	if limit < 1 {
		limit = 12
	}

	var resumes []models.Resume
	err := query.Preload("File").
		Order("verified DESC, updated_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&resumes).Error
	if err != nil {
		return nil, 0, err
	}

	return resumes, total, nil
}

// FindAll returns every resume, used by the admin XLSX export.
func (r *ResumeRepositoryImpl) FindAll() ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Order("created_at DESC").Find(&resumes).Error
	return resumes, err
}
