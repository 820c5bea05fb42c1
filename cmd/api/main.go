package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"umkm-kembar-barokah/internal/cache"
	"umkm-kembar-barokah/internal/config"
	"umkm-kembar-barokah/internal/forecast"
	"umkm-kembar-barokah/internal/handler"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/service"
	"umkm-kembar-barokah/internal/ws"
	"umkm-kembar-barokah/pkg/database"
	"umkm-kembar-barokah/pkg/jwt"
	"umkm-kembar-barokah/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.ConnectionString())
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	rewritten, err := repository.Migrate(db)
	if err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}
	if rewritten > 0 {
		zlog.Info("normalized legacy ledger kinds", zap.Int64("rows", rewritten))
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 4. Forecast cache: Redis when reachable, otherwise no cache
	var forecastCache cache.ForecastCache = cache.NoopForecastCache{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisForecastCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			_ = rc.Close()
			zlog.Warn("redis unavailable, forecast cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			forecastCache = rc
			zlog.Info("forecast cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo, jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), zlog)
	seedAdmin(authService, cfg, zlog)

	services := handler.Services{
		Auth:      authService,
		Product:   service.NewProductService(productRepo, customerRepo, wsHub, zlog),
		Customer:  service.NewCustomerService(customerRepo, zlog),
		Audit:     service.NewAuditService(db, productRepo, auditRepo, wsHub, zlog, cfg.Ledger.Atomic),
		Dashboard: service.NewDashboardService(productRepo, auditRepo),
		Forecast: service.NewForecastService(
			forecast.NewClient(cfg.Forecast.URL, cfg.Forecast.Timeout),
			forecastCache, cfg.Forecast.CacheTTL, zlog,
		),
	}

	// 6. Setup Fiber
	app := handler.NewRouter(handler.RouterConfig{
		AppName:        cfg.App.Name,
		AllowedOrigins: cfg.App.AllowedOrigins,
		RequestLog:     true,
	}, services, wsHub)

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			zlog.Panic("listen", zap.Error(err))
		}
	}()
	zlog.Info("server started", zap.String("addr", cfg.Address()), zap.Bool("atomic_ledger", cfg.Ledger.Atomic))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("server exited")
}

// seedAdmin creates the configured admin account if it does not exist yet.
func seedAdmin(auth service.AuthService, cfg *config.Config, zlog *zap.Logger) {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return
	}

	_, err := auth.Register(context.Background(), &service.RegisterRequest{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	})
	switch {
	case err == nil:
		zlog.Info("admin user created", zap.String("username", cfg.Admin.Username))
	case errors.Is(err, service.ErrUsernameTaken):
	default:
		zlog.Warn("failed to seed admin user", zap.Error(err))
	}
}
