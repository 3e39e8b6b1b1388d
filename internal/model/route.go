package model

import "time"

// Route is a named ordered sequence of clients to be visited.
type Route struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Route) TableName() string { return "routes" }

// RouteClient is the ordered route membership row. Positions are dense and
// zero-based within a route; membership replacement rewrites all rows.
type RouteClient struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	RouteID  uint `gorm:"not null;uniqueIndex:idx_route_clients_route_client;index" json:"route_id"`
	ClientID uint `gorm:"not null;uniqueIndex:idx_route_clients_route_client" json:"client_id"`
	Position int  `gorm:"not null" json:"position"`
}

func (RouteClient) TableName() string { return "route_clients" }

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted:
		return true
	}
	return false
}

// RouteAssignment binds a route to a user for one calendar date. The
// composite unique index is the enforcement for duplicate assignments under
// concurrent requests; the second writer's insert fails and is reported as a
// conflict.
type RouteAssignment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	RouteID   uint             `gorm:"not null;uniqueIndex:idx_route_assignments_route_user_date" json:"route_id"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_route_assignments_route_user_date;index" json:"user_id"`
	Date      string           `gorm:"type:varchar(10);not null;uniqueIndex:idx_route_assignments_route_user_date" json:"date"`
	Status    AssignmentStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

func (RouteAssignment) TableName() string { return "route_assignments" }
