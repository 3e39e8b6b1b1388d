package repository

import (
	"context"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgAssignmentRepository struct {
	db *gorm.DB
}

func NewPGAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &pgAssignmentRepository{db: db}
}

func (r *pgAssignmentRepository) Create(ctx context.Context, a *model.RouteAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *pgAssignmentRepository) GetByID(ctx context.Context, id uint) (*model.RouteAssignment, error) {
	var a model.RouteAssignment
	if err := r.db.WithContext(ctx).Preload("Route").First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgAssignmentRepository) Update(ctx context.Context, a *model.RouteAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *pgAssignmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RouteAssignment{}, "id = ?", id).Error
}

func (r *pgAssignmentRepository) ListRange(ctx context.Context, start, end string, userID uint) ([]model.RouteAssignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Route").
		Where("date >= ? AND date <= ?", start, end)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var assignments []model.RouteAssignment
	if err := q.Order("date, route_id").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *pgAssignmentRepository) ListByUser(ctx context.Context, userID uint, date string) ([]model.RouteAssignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Route").
		Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var assignments []model.RouteAssignment
	if err := q.Order("date, route_id").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
