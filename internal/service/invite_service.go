package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	"routeview/backend/pkg/crypto"
)

const defaultInviteTTL = 7 * 24 * time.Hour

type InviteService interface {
	Create(ctx context.Context, createdBy uint, expiresAt *time.Time) (*model.InviteCode, error)
	List(ctx context.Context) ([]model.InviteCode, error)
	Delete(ctx context.Context, id uint) error
}

type inviteService struct {
	inviteRepo repository.InviteCodeRepository
}

func NewInviteService(inviteRepo repository.InviteCodeRepository) InviteService {
	return &inviteService{inviteRepo: inviteRepo}
}

func (s *inviteService) Create(ctx context.Context, createdBy uint, expiresAt *time.Time) (*model.InviteCode, error) {
	code, err := crypto.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	expiry := time.Now().Add(defaultInviteTTL)
	if expiresAt != nil {
		expiry = *expiresAt
	}

	inviteCode := &model.InviteCode{
		Code:        code,
		CreatedByID: createdBy,
		ExpiresAt:   expiry,
	}
	if err := s.inviteRepo.Create(ctx, inviteCode); err != nil {
		return nil, fmt.Errorf("create invite code: %w", err)
	}
	return inviteCode, nil
}

func (s *inviteService) List(ctx context.Context) ([]model.InviteCode, error) {
	return s.inviteRepo.List(ctx)
}

func (s *inviteService) Delete(ctx context.Context, id uint) error {
	if err := s.inviteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete invite code: %w", err)
	}
	return nil
}
