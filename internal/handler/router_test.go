package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"routeview/backend/internal/config"
	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	"routeview/backend/internal/service"
	jwtpkg "routeview/backend/pkg/jwt"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT:    config.JWTConfig{SigningKey: "test-key", Issuer: "routeview", TokenTTL: time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	userRepo := repository.NewPGUserRepository(db)
	inviteRepo := repository.NewPGInviteCodeRepository(db)
	clientRepo := repository.NewPGClientRepository(db)
	visitRepo := repository.NewPGVisitLogRepository(db)
	routeRepo := repository.NewPGRouteRepository(db)
	assignmentRepo := repository.NewPGAssignmentRepository(db)
	templateRepo := repository.NewPGRouteTemplateRepository(db)
	settingRepo := repository.NewPGSettingRepository(db)
	denylist := repository.NewMemoryTokenDenylist()

	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TokenTTL)

	authService := service.NewAuthService(userRepo, inviteRepo, denylist, jwtManager)
	userService := service.NewUserService(userRepo)
	inviteService := service.NewInviteService(inviteRepo)
	clientService := service.NewClientService(clientRepo, visitRepo, settingRepo)
	routeService := service.NewRouteService(routeRepo, clientRepo, assignmentRepo, userRepo)
	templateService := service.NewRouteTemplateService(templateRepo, routeService, routeRepo)
	settingService := service.NewSettingService(settingRepo)

	require.NoError(t, settingService.Seed(context.Background()))
	require.NoError(t, authService.SeedAdmin(context.Background(), "admin@example.com", "admin-password", "Admin"))

	engine := SetupRouter(
		cfg, zap.NewNop(), db, jwtManager, userRepo, denylist,
		NewAuthHandler(authService),
		NewClientHandler(clientService),
		NewRouteHandler(routeService),
		NewRouteTemplateHandler(templateService),
		NewAdminHandler(userService, inviteService),
		NewSettingHandler(settingService),
	)
	return &testServer{engine: engine, db: db}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// registerMember provisions a member account through the real invite flow
// and returns a fresh token for it.
func (s *testServer) registerMember(t *testing.T, email string) string {
	t.Helper()
	adminToken := s.login(t, "admin@example.com", "admin-password")

	w, env := s.do(t, http.MethodPost, "/api/invite-codes", adminToken, gin.H{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var invite struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invite))

	w, _ = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       email,
		"password":    "member-password",
		"name":        "Member",
		"invite_code": invite.Code,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return s.login(t, email, "member-password")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.registerMember(t, "flow@example.com")

	w, env := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "flow@example.com", me.Email)
	assert.Equal(t, model.RoleMember, me.Role)
	// The password hash must never leak through the API.
	assert.NotContains(t, string(env.Data), "password")

	w, _ = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer authenticates.
	w, _ = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "short@example.com",
		"password":    "tiny",
		"name":        "Short",
		"invite_code": "whatever",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "nobody@example.com",
		"password":    "long-enough",
		"name":        "Nobody",
		"invite_code": "no-such-code",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/clients", "/api/routes", "/api/my-routes", "/api/route-templates"} {
		w, _ := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 for %s", path)
	}
}

func TestAdminEndpointsRejectMembers(t *testing.T) {
	s := newTestServer(t)
	memberToken := s.registerMember(t, "member@example.com")
	adminToken := s.login(t, "admin@example.com", "admin-password")

	w, _ := s.do(t, http.MethodGet, "/api/users", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/invite-codes", memberToken, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientLocationAlias(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "admin-password")

	w, env := s.do(t, http.MethodPost, "/api/clients", token, gin.H{
		"name":      "Aliased",
		"latitude":  40.0,
		"longitude": -3.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Client
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// The same resource is reachable under the legacy prefix.
	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/locations/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Client
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Aliased", fetched.Name)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/locations/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/clients/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateClientAtZeroCoordinates(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "admin-password")

	// 0.0 is a legitimate coordinate (equator, prime meridian); only a
	// missing field is a validation error.
	w, env := s.do(t, http.MethodPost, "/api/clients", token, gin.H{
		"name":      "Null Island",
		"latitude":  0.0,
		"longitude": 0.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Client
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Zero(t, created.Latitude)
	assert.Zero(t, created.Longitude)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/clients/%d", created.ID), token, gin.H{
		"name":      "Null Island",
		"latitude":  0.0,
		"longitude": -3.7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Client
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Zero(t, updated.Latitude)
	assert.InDelta(t, -3.7, updated.Longitude, 0.0001)

	w, _ = s.do(t, http.MethodPost, "/api/clients", token, gin.H{
		"name":      "No Coordinates",
		"longitude": 1.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsReadableWithoutLogin(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/settings/map_style", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var setting model.Setting
	require.NoError(t, json.Unmarshal(env.Data, &setting))
	assert.Equal(t, model.SettingMapStyle, setting.Key)

	// Writes stay admin-only.
	w, _ = s.do(t, http.MethodPut, "/api/settings/map_style", "", gin.H{"value": `"satellite"`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBulkSettingsUpdate(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "admin-password")

	w, env := s.do(t, http.MethodPut, "/api/settings", token, gin.H{
		"map_style":                 `"satellite"`,
		"service_status_thresholds": `{"green_days":3,"orange_days":6}`,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var settings []model.Setting
	require.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Len(t, settings, 2)

	w, env = s.do(t, http.MethodGet, "/api/settings/map_style", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var style model.Setting
	require.NoError(t, json.Unmarshal(env.Data, &style))
	assert.Equal(t, `"satellite"`, style.Value)
}

func TestAssignmentConflictOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.registerMember(t, "driver@example.com")

	w, env := s.do(t, http.MethodPost, "/api/routes", token, gin.H{"name": "Daily"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var route struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &route))

	path := fmt.Sprintf("/api/routes/%d/assign", route.ID)
	w, _ = s.do(t, http.MethodPost, path, token, gin.H{"user_id": 0, "date": "2026-09-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodPost, path, token, gin.H{"user_id": 0, "date": "2026-09-01"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, path, token, gin.H{"user_id": 0, "date": "September 1st"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
