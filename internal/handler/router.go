package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"routeview/backend/internal/config"
	"routeview/backend/internal/handler/middleware"
	"routeview/backend/internal/repository"
	jwtpkg "routeview/backend/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	jwtManager *jwtpkg.Manager,
	userRepo repository.UserRepository,
	denylist repository.TokenDenylist,
	authHandler *AuthHandler,
	clientHandler *ClientHandler,
	routeHandler *RouteHandler,
	templateHandler *RouteTemplateHandler,
	adminHandler *AdminHandler,
	settingHandler *SettingHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	// Liveness: verifies the database connection is still usable.
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", middleware.MetricsHandler())

	auth := middleware.JWTAuth(jwtManager, userRepo, denylist)
	optionalAuth := middleware.OptionalAuth(jwtManager, userRepo, denylist)

	// Public auth routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", auth, authHandler.Me)
		authGroup.POST("/logout", auth, authHandler.Logout)
	}

	// Map style and other settings are readable without login so the map UI
	// can render its login screen; writes are admin-only.
	r.GET("/api/settings", optionalAuth, settingHandler.List)
	r.GET("/api/settings/:key", optionalAuth, settingHandler.Get)

	// Protected routes
	api := r.Group("/api")
	api.Use(auth)
	{
		// /api/locations is the historical path for /api/clients; both
		// prefixes resolve to the same handler set.
		mountClientRoutes(api.Group("/clients"), clientHandler)
		mountClientRoutes(api.Group("/locations"), clientHandler)
		api.DELETE("/logs/:id", clientHandler.DeleteVisitLog)

		api.GET("/routes", routeHandler.List)
		api.POST("/routes", routeHandler.Create)
		api.GET("/routes/:id", routeHandler.Get)
		api.PUT("/routes/:id", routeHandler.Update)
		api.DELETE("/routes/:id", routeHandler.Delete)
		api.POST("/routes/:id/assign", routeHandler.Assign)
		api.POST("/routes/:id/save-as-template", templateHandler.SaveRouteAsTemplate)

		api.GET("/my-routes", routeHandler.MyRoutes)
		api.GET("/schedule", routeHandler.Schedule)
		api.POST("/schedule/batch", routeHandler.BatchAssign)
		api.PUT("/route-assignments/:id/status", routeHandler.UpdateAssignmentStatus)
		api.DELETE("/route-assignments/:id", routeHandler.DeleteAssignment)

		api.GET("/route-templates", templateHandler.List)
		api.POST("/route-templates", templateHandler.Create)
		api.GET("/route-templates/:id", templateHandler.Get)
		api.PUT("/route-templates/:id", templateHandler.Update)
		api.DELETE("/route-templates/:id", templateHandler.Delete)
		api.POST("/route-templates/:id/create-route", templateHandler.CreateRoute)
	}

	// Admin routes
	admin := r.Group("/api")
	admin.Use(auth, middleware.AdminOnly())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.POST("/invite-codes", adminHandler.CreateInviteCode)
		admin.GET("/invite-codes", adminHandler.ListInviteCodes)
		admin.DELETE("/invite-codes/:id", adminHandler.DeleteInviteCode)

		admin.PUT("/settings", settingHandler.BulkSet)
		admin.PUT("/settings/:key", settingHandler.Set)
	}

	return r
}

// mountClientRoutes registers the client CRUD surface on a group, so the
// legacy /api/locations prefix and /api/clients share one handler set.
func mountClientRoutes(g *gin.RouterGroup, h *ClientHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/with-status", h.ListWithStatus)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/logs", h.ListVisitLogs)
	g.POST("/:id/logs", h.CreateVisitLog)
}
