package repository

import (
	"context"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgRouteRepository struct {
	db *gorm.DB
}

func NewPGRouteRepository(db *gorm.DB) RouteRepository {
	return &pgRouteRepository{db: db}
}

func (r *pgRouteRepository) Create(ctx context.Context, route *model.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *pgRouteRepository) GetByID(ctx context.Context, id uint) (*model.Route, error) {
	var route model.Route
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *pgRouteRepository) List(ctx context.Context) ([]model.Route, error) {
	var routes []model.Route
	if err := r.db.WithContext(ctx).Order("id").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *pgRouteRepository) Update(ctx context.Context, route *model.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *pgRouteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RouteClient{}, "route_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.RouteAssignment{}, "route_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Route{}, "id = ?", id).Error
	})
}

func (r *pgRouteRepository) ReplaceClients(ctx context.Context, routeID uint, clientIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RouteClient{}, "route_id = ?", routeID).Error; err != nil {
			return err
		}
		if len(clientIDs) == 0 {
			return nil
		}
		memberships := make([]model.RouteClient, 0, len(clientIDs))
		for i, clientID := range clientIDs {
			memberships = append(memberships, model.RouteClient{
				RouteID:  routeID,
				ClientID: clientID,
				Position: i,
			})
		}
		return tx.Create(&memberships).Error
	})
}

func (r *pgRouteRepository) ListClientIDs(ctx context.Context, routeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.RouteClient{}).
		Where("route_id = ?", routeID).
		Order("position").
		Pluck("client_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
