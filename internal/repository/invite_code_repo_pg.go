package repository

import (
	"context"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

type pgInviteCodeRepository struct {
	db *gorm.DB
}

func NewPGInviteCodeRepository(db *gorm.DB) InviteCodeRepository {
	return &pgInviteCodeRepository{db: db}
}

func (r *pgInviteCodeRepository) Create(ctx context.Context, code *model.InviteCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *pgInviteCodeRepository) GetByCode(ctx context.Context, code string) (*model.InviteCode, error) {
	var inviteCode model.InviteCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&inviteCode).Error; err != nil {
		return nil, err
	}
	return &inviteCode, nil
}

func (r *pgInviteCodeRepository) List(ctx context.Context) ([]model.InviteCode, error) {
	var codes []model.InviteCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *pgInviteCodeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.InviteCode{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Consume is a conditional update: the WHERE used_by_id IS NULL clause makes
// the second of two concurrent consumers update zero rows instead of
// overwriting the first.
func (r *pgInviteCodeRepository) Consume(ctx context.Context, code string, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.InviteCode{}).
		Where("code = ? AND used_by_id IS NULL", code).
		Update("used_by_id", userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
