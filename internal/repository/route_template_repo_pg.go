package repository

import (
	"context"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgRouteTemplateRepository struct {
	db *gorm.DB
}

func NewPGRouteTemplateRepository(db *gorm.DB) RouteTemplateRepository {
	return &pgRouteTemplateRepository{db: db}
}

func (r *pgRouteTemplateRepository) Create(ctx context.Context, tmpl *model.RouteTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

func (r *pgRouteTemplateRepository) GetByID(ctx context.Context, id uint) (*model.RouteTemplate, error) {
	var tmpl model.RouteTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *pgRouteTemplateRepository) List(ctx context.Context) ([]model.RouteTemplate, error) {
	var tmpls []model.RouteTemplate
	if err := r.db.WithContext(ctx).Order("id").Find(&tmpls).Error; err != nil {
		return nil, err
	}
	return tmpls, nil
}

func (r *pgRouteTemplateRepository) Update(ctx context.Context, tmpl *model.RouteTemplate) error {
	return r.db.WithContext(ctx).Save(tmpl).Error
}

func (r *pgRouteTemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RouteTemplate{}, "id = ?", id).Error
}
