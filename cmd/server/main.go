package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskvault/backend/api/handler"
	"github.com/taskvault/backend/internal/config"
	"github.com/taskvault/backend/internal/infrastructure/audit"
	"github.com/taskvault/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskvault/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskvault/backend/internal/infrastructure/redis"
	"github.com/taskvault/backend/internal/middleware"
	"github.com/taskvault/backend/internal/router"
	"github.com/taskvault/backend/internal/services"
	"github.com/taskvault/backend/internal/services/lifecycle"
	"github.com/taskvault/backend/pkg/httpcontext"
	"github.com/taskvault/backend/pkg/logger"
	"github.com/taskvault/backend/repository/postgres"
	redisRepo "github.com/taskvault/backend/repository/redis"
	adminUC "github.com/taskvault/backend/usecase/admin"
	authUC "github.com/taskvault/backend/usecase/auth"
	taskUC "github.com/taskvault/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditStore, err := audit.Open(cfg.Audit.Path, "audit")
	if err != nil {
		zapLogger.Fatal("failed to open audit store", zap.Error(err))
	}
	manager.Register("audit", func(ctx context.Context) error {
		return auditStore.Close()
	})

	mon := monitor.New(pool, redisClient, auditStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	retention := services.NewAuditRetention(auditStore, zapLogger, services.RetentionConfig{
		Interval:  cfg.Audit.SweepInterval,
		Retention: cfg.Audit.Retention,
	})
	retention.Start()
	manager.Register("audit_retention", func(ctx context.Context) error {
		retention.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	tokenRepo := redisRepo.NewTokenRepository(redisClient, cfg.Auth.TokenTTL)

	if err := services.EnsureAdmin(appCtx, userRepo, cfg.Bootstrap, zapLogger); err != nil {
		zapLogger.Fatal("bootstrap admin failed", zap.Error(err))
	}

	authUseCase := authUC.New(userRepo, tokenRepo, auditStore, zapLogger, cfg.Auth.TokenTTL)
	taskUseCase := taskUC.New(taskRepo, auditStore, zapLogger)
	adminUseCase := adminUC.New(userRepo, taskRepo, auditStore, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Admin:  apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.BearerAuth(authUseCase, ctxAdapter, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
