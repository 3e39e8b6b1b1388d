package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
)

func newTemplateService(t *testing.T) (RouteTemplateService, RouteService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	routeSvc := NewRouteService(
		repository.NewPGRouteRepository(db),
		repository.NewPGClientRepository(db),
		repository.NewPGAssignmentRepository(db),
		repository.NewPGUserRepository(db),
	)
	tmplSvc := NewRouteTemplateService(
		repository.NewPGRouteTemplateRepository(db),
		routeSvc,
		repository.NewPGRouteRepository(db),
	)
	return tmplSvc, routeSvc, db
}

func TestTemplateCRUD(t *testing.T) {
	svc, _, db := newTemplateService(t)
	ctx := context.Background()
	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin)

	created, err := svc.Create(ctx, admin.ID, RouteTemplateInput{
		Name:           "Standard Week",
		ClientIDs:      []uint{5, 3, 8},
		RecurrenceDays: []string{"monday", "thursday"},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 3, 8}, created.ClientIDs)
	assert.Equal(t, []string{"monday", "thursday"}, created.RecurrenceDays)
	assert.Equal(t, admin.ID, created.CreatedByID)

	updated, err := svc.Update(ctx, created.ID, RouteTemplateInput{Name: "Trimmed", ClientIDs: []uint{3}})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, updated.ClientIDs)
	assert.Empty(t, updated.RecurrenceDays)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRouteFromTemplateDropsStaleIDs(t *testing.T) {
	svc, _, db := newTemplateService(t)
	ctx := context.Background()
	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin)
	c1 := createTestClient(t, db, "Alpha")
	c2 := createTestClient(t, db, "Beta")

	// 9999 points at a client that no longer exists.
	tmpl, err := svc.Create(ctx, admin.ID, RouteTemplateInput{
		Name:      "Partial",
		ClientIDs: []uint{c2.ID, 9999, c1.ID},
	})
	require.NoError(t, err)

	route, err := svc.CreateRoute(ctx, tmpl.ID, "From Template")
	require.NoError(t, err)
	assert.Equal(t, "From Template", route.Name)
	assert.Equal(t, []uint{c2.ID, c1.ID}, route.ClientIDs)

	// An empty name falls back to the template's.
	route, err = svc.CreateRoute(ctx, tmpl.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Partial", route.Name)

	_, err = svc.CreateRoute(ctx, 9999, "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRoute(t *testing.T) {
	svc, routeSvc, db := newTemplateService(t)
	ctx := context.Background()
	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin)
	c1 := createTestClient(t, db, "Alpha")
	c2 := createTestClient(t, db, "Beta")

	route, err := routeSvc.Create(ctx, RouteInput{Name: "Live Route", ClientIDs: []uint{c2.ID, c1.ID}})
	require.NoError(t, err)

	tmpl, err := svc.SnapshotRoute(ctx, route.ID, "", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live Route", tmpl.Name)
	assert.Equal(t, []uint{c2.ID, c1.ID}, tmpl.ClientIDs)

	_, err = svc.SnapshotRoute(ctx, 9999, "Ghost", admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
