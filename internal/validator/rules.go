package validator

import (
	"log"

	"chefhire_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-experience-bucket", validateExperienceBucket)
	mustRegister("is-work-type", validateWorkType)
	mustRegister("is-announcement-type", validateAnnouncementType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return models.ValidRole(models.UserRole(value))
}

func validateExperienceBucket(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "all", "fresher", "medium", "high", "pro":
		return true
	}
	return false
}

func validateWorkType(fl validator.FieldLevel) bool {
	switch models.WorkType(fl.Field().String()) {
	case "", models.WorkTypeFullTime, models.WorkTypePartTime, models.WorkTypeContract:
		return true
	}
	return false
}

func validateAnnouncementType(fl validator.FieldLevel) bool {
	switch models.AnnouncementType(fl.Field().String()) {
	case "", models.AnnouncementTypeInfo, models.AnnouncementTypeWarning, models.AnnouncementTypePromotional:
		return true
	}
	return false
}
