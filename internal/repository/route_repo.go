package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type RouteRepository interface {
	Create(ctx context.Context, route *model.Route) error
	GetByID(ctx context.Context, id uint) (*model.Route, error)
	List(ctx context.Context) ([]model.Route, error)
	Update(ctx context.Context, route *model.Route) error
	// Delete removes the route with its memberships and assignments.
	Delete(ctx context.Context, id uint) error
	// ReplaceClients rewrites the route's membership: delete-all, re-insert
	// with position = slice index. Callers pass client ids already filtered
	// to existing clients.
	ReplaceClients(ctx context.Context, routeID uint, clientIDs []uint) error
	// ListClientIDs returns the route's member client ids ordered by position.
	ListClientIDs(ctx context.Context, routeID uint) ([]uint, error)
}
