package models

import "time"

// Announcement is an admin-authored banner. Clients show the single
// highest-priority record whose scheduling window covers now.
type Announcement struct {
	BaseModel
	Title       string           `gorm:"not null" json:"title"`
	Body        string           `json:"body"`
	Type        AnnouncementType `gorm:"type:varchar(20);default:'info'" json:"type"`
	StartDate   time.Time        `gorm:"index" json:"start_date"`
	EndDate     time.Time        `gorm:"index" json:"end_date"`
	Priority    int              `gorm:"default:0" json:"priority"`
	Dismissible bool             `gorm:"default:true" json:"dismissible"`
	CreatedBy   string           `gorm:"type:uuid" json:"created_by"`
}

// ActiveAt reports whether the announcement window covers t.
func (a *Announcement) ActiveAt(t time.Time) bool {
	return !t.Before(a.StartDate) && !t.After(a.EndDate)
}
