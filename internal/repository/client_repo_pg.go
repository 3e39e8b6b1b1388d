package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgClientRepository struct {
	db *gorm.DB
}

func NewPGClientRepository(db *gorm.DB) ClientRepository {
	return &pgClientRepository{db: db}
}

func (r *pgClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *pgClientRepository) GetByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *pgClientRepository) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *pgClientRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []model.Client
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *pgClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *pgClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VisitLog{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.RouteClient{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Client{}, "id = ?", id).Error
	})
}

func (r *pgClientRepository) LatestVisitTimes(ctx context.Context) (map[uint]time.Time, error) {
	type row struct {
		ClientID uint
		LastAt   time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.VisitLog{}).
		Select("client_id, MAX(created_at) AS last_at").
		Group("client_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	latest := make(map[uint]time.Time, len(rows))
	for _, r := range rows {
		latest[r.ClientID] = r.LastAt
	}
	return latest, nil
}
