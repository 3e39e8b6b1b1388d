package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type InviteCodeRepository interface {
	Create(ctx context.Context, code *model.InviteCode) error
	GetByCode(ctx context.Context, code string) (*model.InviteCode, error)
	List(ctx context.Context) ([]model.InviteCode, error)
	Delete(ctx context.Context, id uint) error
	// Consume marks the code as used by the given user. Returns false when the
	// code was already consumed by a concurrent request.
	Consume(ctx context.Context, code string, userID uint) (bool, error)
}
