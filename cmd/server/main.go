package main // Entry point package

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/config"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/database"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/handler"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/logger"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/middleware"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/queue"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/router"
	queue_publisher "github.com/r33j4n/mentorhub-genesis-project-sub001/internal/service"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/sweeper"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zl, err := logger.New(logger.FromEnv(), logger.DefaultServiceName)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zl.Fatal("database open", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		zl.Fatal("database migrate", zap.Error(err))
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	mentors := repository.NewMentorRepo(db)
	rules := repository.NewAvailabilityRepo(db)
	sessions := repository.NewSessionRepo(db)
	notifications := repository.NewNotificationRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens, mentors)
	mentorH := handler.NewMentorHandler(mentors)
	availH := handler.NewAvailabilityHandler(rules)
	browseH := handler.NewBrowseHandler(mentors, rules, sessions)
	sessionH := handler.NewSessionHandler(sessions, mentors)
	notifH := handler.NewNotificationHandler(notifications)
	dashH := handler.NewDashboardHandler(users, sessions, mentors)
	adminH := handler.NewAdminHandler(users, mentors)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Redis backs the rate limiter and the public directory cache.  A nil
	// client disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}
	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterPublic(e, browseH, cacheMW)
	router.RegisterAuth(e, authH, middleware.JWTAuth(cfg.JWTSecret))
	router.RegisterMentor(e, mentorH, availH, sessionH, cfg.JWTSecret)
	router.RegisterMentee(e, sessionH, cfg.JWTSecret)
	router.RegisterShared(e, sessionH, notifH, dashH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Lifecycle event consumer writes notification rows; it reconnects on
	// broker failures and exits with the context.
	go func() {
		if err := queue.StartSessionConsumer(ctx, queue_publisher.BrokerURL(), notifications); err != nil {
			zl.Warn("session consumer stopped", zap.Error(err))
		}
	}()

	// Time-based transitions: confirmed sessions start and running
	// sessions complete without any user action.
	go sweeper.New(sessions, cfg.SweepInterval).Run(ctx)

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		zl.Info("server stopped", zap.Error(err))
	}
}
