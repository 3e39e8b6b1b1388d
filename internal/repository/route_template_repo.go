package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type RouteTemplateRepository interface {
	Create(ctx context.Context, tmpl *model.RouteTemplate) error
	GetByID(ctx context.Context, id uint) (*model.RouteTemplate, error)
	List(ctx context.Context) ([]model.RouteTemplate, error)
	Update(ctx context.Context, tmpl *model.RouteTemplate) error
	Delete(ctx context.Context, id uint) error
}
