package repositories

import (
	"errors"
	"time"

	"chefhire_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrOrderNotFound        = errors.New("payment order not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	// Plans
	FindActivePlans() ([]models.SubscriptionPlan, error)
	FindPlanByID(id string) (*models.SubscriptionPlan, error)
	CreatePlan(plan *models.SubscriptionPlan) error

	// Payment orders
	CreateOrder(order *models.PaymentOrder) error
	FindOrderByID(id string) (*models.PaymentOrder, error)
	FindOrderByInvID(invID string) (*models.PaymentOrder, error)
	UpdateOrderStatus(id string, status models.PaymentStatus, reason string) error
	FindPendingOrdersOlderThan(age time.Duration) ([]models.PaymentOrder, error)

	// Subscriptions
	FindActiveByUserID(userID string) (*models.UserSubscription, error)
	ActivateSubscription(userID, planID string, window time.Duration) (*models.UserSubscription, error)
	ExpireDue() ([]string, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) FindActivePlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) CreatePlan(plan *models.SubscriptionPlan) error {
	return r.db.Create(plan).Error
}

func (r *SubscriptionRepositoryImpl) CreateOrder(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *SubscriptionRepositoryImpl) FindOrderByID(id string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Preload("Plan").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *SubscriptionRepositoryImpl) FindOrderByInvID(invID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Preload("Plan").First(&order, "inv_id = ?", invID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status. Orders already in a
// terminal state are left untouched so a late gateway callback cannot
// overwrite the outcome.
func (r *SubscriptionRepositoryImpl) UpdateOrderStatus(id string, status models.PaymentStatus, reason string) error {
	columns := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.PaymentStatusSuccess {
		now := time.Now()
		columns["paid_at"] = &now
	}
	if reason != "" {
		columns["failure_reason"] = reason
	}

	result := r.db.Model(&models.PaymentOrder{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindPendingOrdersOlderThan(age time.Duration) ([]models.PaymentOrder, error) {
	var orders []models.PaymentOrder
	cutoff := time.Now().Add(-age)
	err := r.db.Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Find(&orders).Error
	return orders, err
}

func (r *SubscriptionRepositoryImpl) FindActiveByUserID(userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ActivateSubscription opens a new window for the plan, extending from the
// current end date when an active subscription already exists.
func (r *SubscriptionRepositoryImpl) ActivateSubscription(userID, planID string, window time.Duration) (*models.UserSubscription, error) {
	var sub *models.UserSubscription

	err := r.db.Transaction(func(tx *gorm.DB) error {
		start := time.Now()

		var current models.UserSubscription
		err := tx.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
			Order("end_date DESC").
			First(&current).Error
		if err == nil && current.EndDate.After(start) {
			start = current.EndDate
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		sub = &models.UserSubscription{
			UserID:    userID,
			PlanID:    planID,
			Status:    models.SubscriptionStatusActive,
			StartDate: start,
			EndDate:   start.Add(window),
		}
		return tx.Create(sub).Error
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// ExpireDue marks subscriptions whose window has closed and returns the
// distinct owner ids of the expired rows. Role downgrades are decided by the
// caller, which must check for remaining active windows first.
func (r *SubscriptionRepositoryImpl) ExpireDue() ([]string, error) {
	var userIDs []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var due []models.UserSubscription
		if err := tx.Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, time.Now()).
			Find(&due).Error; err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]string, 0, len(due))
		seen := map[string]bool{}
		for _, s := range due {
			ids = append(ids, s.ID)
			if !seen[s.UserID] {
				seen[s.UserID] = true
				userIDs = append(userIDs, s.UserID)
			}
		}

		return tx.Model(&models.UserSubscription{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": models.SubscriptionStatusExpired, "updated_at": time.Now()}).Error
	})

	return userIDs, err
}
