package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models. Composite unique
// indexes are declared with gorm tags so the same schema works on PostgreSQL
// and the sqlite databases used in tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&InviteCode{},
		&Client{},
		&VisitLog{},
		&Route{},
		&RouteClient{},
		&RouteAssignment{},
		&RouteTemplate{},
		&Setting{},
	)
}
