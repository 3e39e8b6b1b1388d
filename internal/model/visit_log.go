package model

import "time"

// VisitLog records a service visit to a client. Immutable once created,
// except by deletion.
type VisitLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"client_id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Notes     string    `gorm:"type:varchar(500)" json:"notes"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (VisitLog) TableName() string { return "visit_logs" }

// VisitTitle builds the auto-generated title for a visit at the given time.
func VisitTitle(at time.Time) string {
	return "Visit - " + at.Format("Jan 2, 2006 3:04 PM")
}
