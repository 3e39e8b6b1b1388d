package repository

import (
	"context"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgVisitLogRepository struct {
	db *gorm.DB
}

func NewPGVisitLogRepository(db *gorm.DB) VisitLogRepository {
	return &pgVisitLogRepository{db: db}
}

func (r *pgVisitLogRepository) Create(ctx context.Context, log *model.VisitLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *pgVisitLogRepository) GetByID(ctx context.Context, id uint) (*model.VisitLog, error) {
	var log model.VisitLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *pgVisitLogRepository) ListByClient(ctx context.Context, clientID uint, search string) ([]model.VisitLog, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title LIKE ? OR notes LIKE ?", pattern, pattern)
	}

	var logs []model.VisitLog
	if err := q.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *pgVisitLogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.VisitLog{}, "id = ?", id).Error
}
