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
	jwtpkg "routeview/backend/pkg/jwt"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, inviteCode string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	CurrentUser(ctx context.Context, userID uint) (*model.User, error)
	Logout(ctx context.Context, claims *jwtpkg.Claims) error
	// SeedAdmin creates the bootstrap admin account when no admin exists yet.
	SeedAdmin(ctx context.Context, email, password, name string) error
}

type authService struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InviteCodeRepository
	denylist   repository.TokenDenylist
	jwtManager *jwtpkg.Manager
}

func NewAuthService(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteCodeRepository,
	denylist repository.TokenDenylist,
	jwtManager *jwtpkg.Manager,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		denylist:   denylist,
		jwtManager: jwtManager,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name, inviteCode string) (*model.User, error) {
	code, err := s.inviteRepo.GetByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteCodeInvalid
		}
		return nil, fmt.Errorf("lookup invite code: %w", err)
	}
	if !code.Usable(time.Now()) {
		return nil, ErrInviteCodeInvalid
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleMember,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	consumed, err := s.inviteRepo.Consume(ctx, inviteCode, user.ID)
	if err != nil {
		return nil, fmt.Errorf("consume invite code: %w", err)
	}
	if !consumed {
		// A concurrent registration won the code; undo the user insert.
		_ = s.userRepo.HardDelete(ctx, user.ID)
		return nil, ErrInviteCodeInvalid
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrUserInactive
	}

	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	return s.denylist.Revoke(ctx, claims.ID, claims.TTL())
}

func (s *authService) SeedAdmin(ctx context.Context, email, password, name string) error {
	count, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}
	return nil
}

var _ AuthService = (*authService)(nil)
