package models

import (
	"github.com/lib/pq"
)

// Resume is the candidate profile of a chef user. One per user, enforced at
// creation time.
type Resume struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Contact
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null" json:"email"`
	Phone string `json:"phone"`

	// Location
	City    string `gorm:"index" json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`

	// Professional
	Profession      string         `gorm:"index" json:"profession"`
	ExperienceYears int            `gorm:"index" json:"experience_years"`
	Cuisines        pq.StringArray `gorm:"type:text[]" json:"cuisines"`
	CurrentCTC      float64        `json:"current_ctc"`
	ExpectedCTC     float64        `json:"expected_ctc"`

	// Preferences
	WorkType       WorkType `gorm:"type:varchar(20)" json:"work_type"`
	JoiningIn      string   `json:"joining_in"` // e.g. "immediate", "30_days"
	OpenToTraining bool     `json:"open_to_training"`

	Verified bool `gorm:"default:false" json:"verified"`

	// Relations
	File *Upload `gorm:"foreignKey:ResumeID" json:"file,omitempty"`
}
