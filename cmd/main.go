package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"routeview/backend/internal/config"
	"routeview/backend/internal/handler"
	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
	"routeview/backend/internal/service"
	jwtpkg "routeview/backend/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize token denylist (Redis or in-memory)
	var denylist repository.TokenDenylist
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		denylist = repository.NewRedisTokenDenylist(redisClient)
		logger.Info("using Redis token denylist")
	case "memory":
		denylist = repository.NewMemoryTokenDenylist()
		logger.Info("using in-memory token denylist")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	userRepo := repository.NewPGUserRepository(db)
	inviteRepo := repository.NewPGInviteCodeRepository(db)
	clientRepo := repository.NewPGClientRepository(db)
	visitRepo := repository.NewPGVisitLogRepository(db)
	routeRepo := repository.NewPGRouteRepository(db)
	assignmentRepo := repository.NewPGAssignmentRepository(db)
	templateRepo := repository.NewPGRouteTemplateRepository(db)
	settingRepo := repository.NewPGSettingRepository(db)

	// 7. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TokenTTL)

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, inviteRepo, denylist, jwtManager)
	userService := service.NewUserService(userRepo)
	inviteService := service.NewInviteService(inviteRepo)
	clientService := service.NewClientService(clientRepo, visitRepo, settingRepo)
	routeService := service.NewRouteService(routeRepo, clientRepo, assignmentRepo, userRepo)
	templateService := service.NewRouteTemplateService(templateRepo, routeService, routeRepo)
	settingService := service.NewSettingService(settingRepo)

	// 9. Seed defaults before serving traffic
	ctx := context.Background()
	if err := settingService.Seed(ctx); err != nil {
		logger.Fatal("failed to seed settings", zap.Error(err))
	}
	if cfg.Auth.AdminPassword != "" {
		if err := authService.SeedAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
			logger.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	// 10. Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	routeHandler := handler.NewRouteHandler(routeService)
	templateHandler := handler.NewRouteTemplateHandler(templateService)
	adminHandler := handler.NewAdminHandler(userService, inviteService)
	settingHandler := handler.NewSettingHandler(settingService)

	// 11. Setup router
	router := handler.SetupRouter(
		cfg, logger, db, jwtManager, userRepo, denylist,
		authHandler, clientHandler, routeHandler, templateHandler, adminHandler, settingHandler,
	)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
