package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type AssignmentRepository interface {
	// Create inserts a new assignment. The composite unique index on
	// (route_id, user_id, date) turns a concurrent duplicate into
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, a *model.RouteAssignment) error
	GetByID(ctx context.Context, id uint) (*model.RouteAssignment, error)
	Update(ctx context.Context, a *model.RouteAssignment) error
	Delete(ctx context.Context, id uint) error
	// ListRange returns assignments with date in [start, end], optionally
	// scoped to one user (userID == 0 means all users). Routes are preloaded.
	ListRange(ctx context.Context, start, end string, userID uint) ([]model.RouteAssignment, error)
	// ListByUser returns the user's assignments, optionally for one date.
	ListByUser(ctx context.Context, userID uint, date string) ([]model.RouteAssignment, error)
}
