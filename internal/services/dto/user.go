package dto

import (
	"time"

	"chefhire_backend/internal/models"
)

type UserResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	Chef       bool              `json:"chef"`
	PhotoURL   string            `json:"photo_url,omitempty"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	CreatedAt  time.Time         `json:"created_at"`

	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

// --- Admin ---

type ListUsersRequest struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Status   string `form:"status" validate:"omitempty,oneof=pending active suspended"`
	Chef     *bool  `form:"chef"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

type SetChefRequest struct {
	Chef *bool `json:"chef" validate:"required"`
}

// NewUserResponse maps a model to its API shape.
func NewUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Chef:       u.Chef,
		PhotoURL:   u.PhotoURL,
		Status:     u.Status,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
	if u.Subscription != nil {
		resp.Subscription = NewSubscriptionResponse(u.Subscription)
	}
	return resp
}
