package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetActiveByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Deactivate(ctx context.Context, id uint) error
	// HardDelete removes the row entirely. Only used to roll back a
	// registration whose invite code lost the consumption race.
	HardDelete(ctx context.Context, id uint) error
	CountAdmins(ctx context.Context) (int64, error)
}
