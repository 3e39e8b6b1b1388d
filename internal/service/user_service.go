package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	"routeview/backend/pkg/crypto"
)

// UserInput carries the full user state for admin create/update; PUT is a
// full-field overwrite, not a patch.
type UserInput struct {
	Email    string
	Password string // empty on update keeps the current hash
	Name     string
	Role     model.Role
	IsActive bool
}

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in UserInput) (*model.User, error)
	Update(ctx context.Context, id uint, in UserInput) (*model.User, error)
	// Deactivate soft-deletes: the row stays to preserve audit history.
	Deactivate(ctx context.Context, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		IsActive:     in.IsActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user.Email = in.Email
	user.Name = in.Name
	user.Role = in.Role
	user.IsActive = in.IsActive
	if in.Password != "" {
		hash, err := crypto.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return s.userRepo.Deactivate(ctx, id)
}
