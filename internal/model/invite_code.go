package model

import "time"

// InviteCode is single-use: UsedByID is set at most once via a conditional
// update, which is what guards concurrent registrations against
// double-consumption.
type InviteCode struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	UsedByID    *uint     `json:"used_by_id,omitempty"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (InviteCode) TableName() string { return "invite_codes" }

// Usable reports whether the code can still be consumed at the given instant.
func (ic *InviteCode) Usable(now time.Time) bool {
	return ic.UsedByID == nil && ic.ExpiresAt.After(now)
}
