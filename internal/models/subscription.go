package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	BaseModel
	Name     string         `gorm:"not null" json:"name"`
	Price    float64        `gorm:"not null" json:"price"`
	Currency string         `gorm:"default:'INR'" json:"currency"`
	Duration string         `gorm:"not null" json:"duration"` // "monthly", "yearly"
	Features datatypes.JSON `gorm:"type:jsonb" json:"features"` // {"full_contacts": true, ...}
	Limits   datatypes.JSON `gorm:"type:jsonb" json:"limits"`
	IsActive bool           `gorm:"default:true" json:"is_active"`
}

type UserSubscription struct {
	BaseModel
	UserID      string             `gorm:"not null;index" json:"user_id"`
	PlanID      string             `gorm:"not null;index" json:"plan_id"`
	Status      SubscriptionStatus `gorm:"default:'active'" json:"status"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	AutoRenew   bool               `gorm:"default:false" json:"auto_renew"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`

	// Relations
	Plan SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan"`
}

// PaymentOrder tracks one checkout round trip against the hosted gateway.
// Lifecycle: PENDING -> SUCCESS | FAILED | CANCELLED.
type PaymentOrder struct {
	BaseModel
	UserID        string        `gorm:"not null;index" json:"user_id"`
	PlanID        string        `gorm:"not null;index" json:"plan_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	InvID         string        `gorm:"uniqueIndex" json:"inv_id"` // gateway invoice id
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`

	// Relations
	Plan SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan"`
}
