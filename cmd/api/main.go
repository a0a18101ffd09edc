package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tpcell/internal/app"
	"tpcell/internal/config"
	"tpcell/internal/database"
	apphttp "tpcell/internal/http"
	"tpcell/internal/http/handlers"
	"tpcell/internal/http/metrics"
	httpmw "tpcell/internal/http/middleware"
	"tpcell/internal/http/response"
	"tpcell/internal/observability"
	"tpcell/internal/repository/postgres"
	"tpcell/internal/security"
	"tpcell/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	studentRepo := postgres.NewStudentRepository(db)
	postingRepo := postgres.NewPostingRepository(db)
	selectionRepo := postgres.NewSelectionRepository(db)
	settingRepo := postgres.NewSettingRepository(db)

	mediaStore, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	profileService := app.NewProfileService(studentRepo, settingRepo, mediaStore, logger)
	statusService := app.NewStatusService(studentRepo, selectionRepo)
	postingService := app.NewPostingService(postingRepo)
	settingService := app.NewSettingService(settingRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	studentHandler := handlers.NewStudentHandler(profileService, limiter)
	statusHandler := handlers.NewStatusHandler(statusService)
	postingHandler := handlers.NewPostingHandler(postingService)
	adminHandler := handlers.NewAdminHandler(settingService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		StudentHandler: studentHandler,
		StatusHandler:  statusHandler,
		PostingHandler: postingHandler,
		AdminHandler:   adminHandler,
		MetricsHandler: handlers.NewMetricsHandler(collector),
		AuthMiddleware: authMiddleware,
		Metrics:        collector,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
