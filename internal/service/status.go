package service

import (
	"encoding/json"
	"time"
)

// ServiceStatus is the freshness tier derived from days since the last visit.
type ServiceStatus string

const (
	StatusNever  ServiceStatus = "never"
	StatusGreen  ServiceStatus = "green"
	StatusOrange ServiceStatus = "orange"
	StatusRed    ServiceStatus = "red"
)

// Thresholds are the tier boundaries in days, stored as a JSON setting.
type Thresholds struct {
	GreenDays  int `json:"green_days"`
	OrangeDays int `json:"orange_days"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{GreenDays: 7, OrangeDays: 14}
}

// ParseThresholds decodes the stored setting value, falling back to defaults
// when the value is missing or corrupt.
func ParseThresholds(value string) Thresholds {
	var t Thresholds
	if err := json.Unmarshal([]byte(value), &t); err != nil || t.GreenDays <= 0 || t.OrangeDays <= 0 {
		return DefaultThresholds()
	}
	return t
}

// ComputeServiceStatus classifies a client by its most recent visit. Age is
// whole days at the given instant; a visit exactly green_days old is still
// green.
func ComputeServiceStatus(lastVisit *time.Time, now time.Time, t Thresholds) ServiceStatus {
	if lastVisit == nil {
		return StatusNever
	}
	ageDays := int(now.Sub(*lastVisit).Hours() / 24)
	switch {
	case ageDays <= t.GreenDays:
		return StatusGreen
	case ageDays <= t.OrangeDays:
		return StatusOrange
	default:
		return StatusRed
	}
}
