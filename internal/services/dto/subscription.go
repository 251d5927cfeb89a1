package dto

import (
	"time"

	"chefhire_backend/internal/models"
)

type PlanResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Duration string  `json:"duration"`
}

type SubscriptionResponse struct {
	ID        string                    `json:"id"`
	PlanID    string                    `json:"plan_id"`
	PlanName  string                    `json:"plan_name,omitempty"`
	Status    models.SubscriptionStatus `json:"status"`
	StartDate time.Time                 `json:"start_date"`
	EndDate   time.Time                 `json:"end_date"`
}

type CreateOrderRequest struct {
	PlanID string `json:"plan_id" validate:"required,uuid4"`
}

type CreateOrderResponse struct {
	OrderID     string  `json:"order_id"`
	InvID       string  `json:"inv_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CheckoutURL string  `json:"checkout_url"`
}

// PaymentCallbackRequest is what the gateway posts back after checkout.
type PaymentCallbackRequest struct {
	InvID     string  `form:"InvId" json:"inv_id" validate:"required"`
	OutSum    float64 `form:"OutSum" json:"out_sum" validate:"required"`
	Signature string  `form:"SignatureValue" json:"signature" validate:"required"`
	Result    string  `form:"Result" json:"result"` // "", "cancelled", "failed"
}

type OrderStatusResponse struct {
	OrderID string               `json:"order_id"`
	Status  models.PaymentStatus `json:"status"`
	PaidAt  *time.Time           `json:"paid_at,omitempty"`
}

func NewPlanResponse(p *models.SubscriptionPlan) *PlanResponse {
	return &PlanResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Duration: p.Duration,
	}
}

func NewSubscriptionResponse(s *models.UserSubscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:        s.ID,
		PlanID:    s.PlanID,
		Status:    s.Status,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
	if s.Plan.ID != "" {
		resp.PlanName = s.Plan.Name
	}
	return resp
}
