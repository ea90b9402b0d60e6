package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/config"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	appHTTP "github.com/cmlabs-hris/ers-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/session"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ers-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/ers-backend-go/internal/service/auth"
	receiptService "github.com/cmlabs-hris/ers-backend-go/internal/service/receipt"
	reimbursementService "github.com/cmlabs-hris/ers-backend-go/internal/service/reimbursement"
	userService "github.com/cmlabs-hris/ers-backend-go/internal/service/user"
)

const (
	appName = "ers-backend"
	version = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser := logger.New(logger.Options{
		AppName: appName,
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		File:    cfg.App.LogFile,
	})
	defer logCloser.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(dsn); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.DefaultPoolOptions)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var appMetrics *metrics.Metrics
	if cfg.App.MetricsEnabled {
		appMetrics = metrics.New()
	}

	scheduler := cron.NewScheduler(ctx)

	// Sessions live in Redis when configured, otherwise in PostgreSQL
	var sessionStore auth.SessionStore
	if cfg.Redis.Addr != "" {
		redisClient, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		sessionStore = session.NewRedisStore(redisClient, session.DefaultKeyPrefix)
		slog.Info("Using Redis session store", "addr", cfg.Redis.Addr)
	} else {
		sessionRepo := postgresql.NewSessionRepository(db)
		sessionStore = sessionRepo

		var onPurged func(int64)
		if appMetrics != nil {
			onPurged = appMetrics.SessionsPurged
		}
		cron.NewSessionJobs(sessionRepo, onPurged).Register(scheduler)
		slog.Info("Using PostgreSQL session store")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	reimbursementRepo := postgresql.NewReimbursementRepository(db)

	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure)

	var (
		loginRecorder          serviceAuth.LoginRecorder
		reimbursementRecorders []reimbursementService.Option
	)
	if appMetrics != nil {
		loginRecorder = appMetrics
		reimbursementRecorders = append(reimbursementRecorders, reimbursementService.WithRecorder(appMetrics))
	}

	userSvc := userService.NewUserService(userRepo, transactor)
	authSvc := serviceAuth.NewAuthService(userSvc, sessionStore, JWTService, loginRecorder)
	reimbursementSvc := reimbursementService.NewReimbursementService(reimbursementRepo, transactor, reimbursementRecorders...)
	receiptSvc := receiptService.NewReceiptService(fileStorage)

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	scheduler.AddJob("cleanup_login_limiters", middleware.LimiterIdleTimeout, loginLimiter.Cleanup)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:               log,
		AllowedOrigins:       cfg.CORS.AllowedOrigins,
		JWTService:           JWTService,
		AuthService:          authSvc,
		LoginLimiter:         loginLimiter,
		Metrics:              appMetrics,
		AuthHandler:          appHTTP.NewAuthHandler(JWTService, authSvc),
		UserHandler:          appHTTP.NewUserHandler(userSvc, authSvc),
		ReimbursementHandler: appHTTP.NewReimbursementHandler(reimbursementSvc, userSvc, receiptSvc),
	})

	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
