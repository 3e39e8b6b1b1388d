package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type VisitLogRepository interface {
	Create(ctx context.Context, log *model.VisitLog) error
	GetByID(ctx context.Context, id uint) (*model.VisitLog, error)
	// ListByClient returns the client's logs newest-first. A non-empty search
	// term filters by substring match over title and notes.
	ListByClient(ctx context.Context, clientID uint, search string) ([]model.VisitLog, error)
	Delete(ctx context.Context, id uint) error
}
