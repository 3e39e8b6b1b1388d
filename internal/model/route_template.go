package model

import (
	"encoding/json"
	"time"
)

// RouteTemplate stores a reusable ordered client-id list as an opaque
// JSON-encoded blob. Ids are not validated against clients; stale ids vanish
// when the template is expanded into a route.
type RouteTemplate struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Description    string    `gorm:"type:varchar(500)" json:"description"`
	ClientIDs      string    `gorm:"type:text;not null;default:'[]'" json:"-"`
	RecurrenceDays string    `gorm:"type:text" json:"-"`
	CreatedByID    uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (RouteTemplate) TableName() string { return "route_templates" }

// ClientIDList decodes the stored client-id blob. A corrupt blob decodes to
// an empty list rather than failing the request.
func (t *RouteTemplate) ClientIDList() []uint {
	var ids []uint
	if err := json.Unmarshal([]byte(t.ClientIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// RecurrenceDayList decodes the stored recurrence-days blob.
func (t *RouteTemplate) RecurrenceDayList() []string {
	var days []string
	if t.RecurrenceDays == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(t.RecurrenceDays), &days); err != nil {
		return nil
	}
	return days
}

// EncodeIDList serializes a client-id list for storage.
func EncodeIDList(ids []uint) string {
	if ids == nil {
		ids = []uint{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

// EncodeDayList serializes a recurrence-day list for storage.
func EncodeDayList(days []string) string {
	if days == nil {
		return ""
	}
	b, _ := json.Marshal(days)
	return string(b)
}
