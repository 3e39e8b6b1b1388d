package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"routeview/backend/internal/model"
)

func TestInviteCodeConsumeIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	repo := NewPGInviteCodeRepository(db)
	ctx := context.Background()

	code := &model.InviteCode{Code: "one-shot", CreatedByID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, code))

	consumed, err := repo.Consume(ctx, "one-shot", 10)
	require.NoError(t, err)
	assert.True(t, consumed)

	// The loser of the race updates zero rows.
	consumed, err = repo.Consume(ctx, "one-shot", 11)
	require.NoError(t, err)
	assert.False(t, consumed)

	stored, err := repo.GetByCode(ctx, "one-shot")
	require.NoError(t, err)
	require.NotNil(t, stored.UsedByID)
	assert.EqualValues(t, 10, *stored.UsedByID)
}

func TestInviteCodeDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPGInviteCodeRepository(db)
	ctx := context.Background()

	code := &model.InviteCode{Code: "short-lived", CreatedByID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, code))

	require.NoError(t, repo.Delete(ctx, code.ID))
	assert.ErrorIs(t, repo.Delete(ctx, code.ID), gorm.ErrRecordNotFound)
}

func TestInviteCodeUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewPGInviteCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.InviteCode{Code: "dup", CreatedByID: 1, ExpiresAt: time.Now().Add(time.Hour)}))
	err := repo.Create(ctx, &model.InviteCode{Code: "dup", CreatedByID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
