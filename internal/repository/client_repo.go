package repository

import (
	"context"
	"time"

	"routeview/backend/internal/model"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id uint) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	// Delete removes the client together with its visit logs and route
	// memberships in one transaction. Routes themselves are left intact.
	Delete(ctx context.Context, id uint) error
	// LatestVisitTimes returns the newest visit-log timestamp per client id,
	// omitting clients that were never visited.
	LatestVisitTimes(ctx context.Context) (map[uint]time.Time, error)
}
