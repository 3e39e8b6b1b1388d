package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	jwtpkg "routeview/backend/pkg/jwt"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB, repository.TokenDenylist) {
	t.Helper()
	db := newTestDB(t)
	denylist := repository.NewMemoryTokenDenylist()
	svc := NewAuthService(
		repository.NewPGUserRepository(db),
		repository.NewPGInviteCodeRepository(db),
		denylist,
		jwtpkg.NewManager("test-key", "routeview", time.Hour),
	)
	return svc, db, denylist
}

func createTestInvite(t *testing.T, db *gorm.DB, code string, expiresAt time.Time) *model.InviteCode {
	t.Helper()
	admin := createTestUser(t, db, code+"-issuer@example.com", model.RoleAdmin)
	invite := &model.InviteCode{Code: code, CreatedByID: admin.ID, ExpiresAt: expiresAt}
	require.NoError(t, db.Create(invite).Error)
	return invite
}

func TestRegisterConsumesInviteCode(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()
	createTestInvite(t, db, "welcome-1", time.Now().Add(time.Hour))

	user, err := svc.Register(ctx, "new@example.com", "password123", "New User", "welcome-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, user.Role)
	assert.True(t, user.IsActive)

	var stored model.InviteCode
	require.NoError(t, db.Where("code = ?", "welcome-1").First(&stored).Error)
	require.NotNil(t, stored.UsedByID)
	assert.Equal(t, user.ID, *stored.UsedByID)

	// Second use of the same code must fail.
	_, err = svc.Register(ctx, "other@example.com", "password123", "Other", "welcome-1")
	assert.ErrorIs(t, err, ErrInviteCodeInvalid)
}

func TestRegisterRejectsUnknownCode(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "new@example.com", "password123", "New", "no-such-code")
	assert.ErrorIs(t, err, ErrInviteCodeInvalid)
}

func TestRegisterRejectsExpiredCode(t *testing.T) {
	svc, db, _ := newAuthService(t)
	createTestInvite(t, db, "stale", time.Now().Add(-time.Minute))

	_, err := svc.Register(context.Background(), "new@example.com", "password123", "New", "stale")
	assert.ErrorIs(t, err, ErrInviteCodeInvalid)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()
	createTestInvite(t, db, "code-a", time.Now().Add(time.Hour))
	createTestInvite(t, db, "code-b", time.Now().Add(time.Hour))

	_, err := svc.Register(ctx, "dup@example.com", "password123", "First", "code-a")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "password123", "Second", "code-b")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()
	createTestInvite(t, db, "login-code", time.Now().Add(time.Hour))
	registered, err := svc.Register(ctx, "driver@example.com", "password123", "Driver", "login-code")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "driver@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "driver@example.com", "nope-nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", registered.ID).Update("is_active", false).Error)
		_, _, err := svc.Login(ctx, "driver@example.com", "password123")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, db, denylist := newAuthService(t)
	ctx := context.Background()
	createTestInvite(t, db, "logout-code", time.Now().Add(time.Hour))
	_, err := svc.Register(ctx, "out@example.com", "password123", "Out", "logout-code")
	require.NoError(t, err)

	manager := jwtpkg.NewManager("test-key", "routeview", time.Hour)
	token, _, err := svc.Login(ctx, "out@example.com", "password123")
	require.NoError(t, err)
	claims, err := manager.Validate(token)
	require.NoError(t, err)

	revoked, err := denylist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err = denylist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestSeedAdmin(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "bootstrap-pass", "Admin"))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Idempotent once an admin exists.
	require.NoError(t, svc.SeedAdmin(ctx, "second@example.com", "bootstrap-pass", "Second"))
	require.NoError(t, db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
