package model

import "time"

// Client is a business location hosting a vending machine.
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	ContactName  string    `gorm:"type:varchar(100)" json:"contact_name"`
	ContactPhone string    `gorm:"type:varchar(50)" json:"contact_phone"`
	ContactEmail string    `gorm:"type:varchar(255)" json:"contact_email"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	Notes        string    `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
