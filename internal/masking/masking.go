// Package masking redacts resume contact details for viewers without a paid
// subscription. Pro and admin viewers always see raw values.
package masking

import (
	"strings"

	"chefhire_backend/internal/models"
)

// FullAccess reports whether the role sees unmasked contact details.
func FullAccess(role models.UserRole) bool {
	return role == models.UserRolePro || role == models.UserRoleAdmin
}

// Email masks an email address for the given viewer role. Basic viewers get
// the first two characters of the local part, a star run of the same length
// as the hidden remainder, and the untouched domain suffix.
func Email(email string, role models.UserRole) string {
	if FullAccess(role) || email == "" {
		return email
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return maskTail(email, 2)
	}

	local := email[:at]
	domain := email[at:] // includes '@'
	return maskTail(local, 2) + domain
}

// Phone masks a phone number for the given viewer role. Basic viewers get
// the first two and last two characters with a star run in between.
func Phone(phone string, role models.UserRole) string {
	if FullAccess(role) || phone == "" {
		return phone
	}

	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}

	return phone[:2] + strings.Repeat("*", len(phone)-4) + phone[len(phone)-2:]
}

// maskTail keeps up to `visible` leading characters and stars out the rest,
// preserving the total length. Strings at or below the visible width are
// fully starred so the original never leaks.
func maskTail(s string, visible int) string {
	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}
