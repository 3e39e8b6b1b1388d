package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"routeview/backend/internal/model"
)

type pgSettingRepository struct {
	db *gorm.DB
}

func NewPGSettingRepository(db *gorm.DB) SettingRepository {
	return &pgSettingRepository{db: db}
}

func (r *pgSettingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *pgSettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	if err := r.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *pgSettingRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model.Setting{Key: key, Value: value}).
		Error
}

func (r *pgSettingRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	settings := make([]model.Setting, 0, len(values))
	for key, value := range values {
		settings = append(settings, model.Setting{Key: key, Value: value})
	}
	// One upsert statement, so a failure leaves no partial write behind.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&settings).
		Error
}

func (r *pgSettingRepository) SetIfAbsent(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&model.Setting{Key: key, Value: value}).
		Error
}
