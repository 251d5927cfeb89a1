package models

type UserStatus string
type UserRole string
type SubscriptionStatus string
type PaymentStatus string
type AnnouncementType string
type WorkType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	// Role gates paid-feature visibility. The chef flag on User is an
	// independent axis: it only says whether a resume exists.
	UserRoleBasic UserRole = "basic"
	UserRolePro   UserRole = "pro"
	UserRoleAdmin UserRole = "admin"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSuccess   PaymentStatus = "SUCCESS"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"

	AnnouncementTypeInfo        AnnouncementType = "info"
	AnnouncementTypeWarning     AnnouncementType = "warning"
	AnnouncementTypePromotional AnnouncementType = "promotional"

	WorkTypeFullTime WorkType = "full_time"
	WorkTypePartTime WorkType = "part_time"
	WorkTypeContract WorkType = "contract"
)

// IsFinal reports whether a payment order can no longer change state.
func (s PaymentStatus) IsFinal() bool {
	switch s {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// ValidRole reports whether the string names a known role.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleBasic, UserRolePro, UserRoleAdmin:
		return true
	}
	return false
}
