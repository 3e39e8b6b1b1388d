package model

import "time"

// Setting is a key-value row; Value is a JSON-encoded string.
type Setting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

const (
	SettingServiceStatusThresholds = "service_status_thresholds"
	SettingMapStyle                = "map_style"
)
