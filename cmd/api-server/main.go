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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hungyeu/database"
	"hungyeu/internal/api/handler"
	"hungyeu/internal/api/middleware"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/api/service"
	"hungyeu/internal/config"
	"hungyeu/internal/viewtracker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	rdb := database.ConnectRedis(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	verifyTokenRepo := repository.NewVerificationTokenRepository(rdb)
	storyRepo := repository.NewStoryRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	pageRepo := repository.NewPageRepository(db)
	adRepo := repository.NewAdRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// services
	mailer := service.NewEmailService(cfg, logger)
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, verifyTokenRepo, mailer, cfg)
	userSvc := service.NewUserService(userRepo, mailer)
	storySvc := service.NewStoryService(storyRepo, userRepo, reactionRepo, ratingRepo, mailer)
	chapterSvc := service.NewChapterService(chapterRepo, storyRepo, reactionRepo, mailer)
	categorySvc := service.NewCategoryService(categoryRepo)
	commentSvc := service.NewCommentService(commentRepo, storyRepo, chapterRepo)
	pageSvc := service.NewPageService(pageRepo)
	adSvc := service.NewAdService(adRepo)
	batchSvc := service.NewBatchService(storySvc, chapterSvc, commentSvc, userSvc)
	exportSvc := service.NewExportService(storyRepo, userRepo, commentRepo)

	tracker := viewtracker.New(rdb, storyRepo, chapterRepo, logger, cfg.ViewFlushInterval)
	tracker.Start()
	defer tracker.Stop()

	router := setupRouter(cfg, logger, authSvc, userSvc, storySvc, chapterSvc,
		categorySvc, commentSvc, pageSvc, adSvc, batchSvc, exportSvc, tracker)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	authSvc service.AuthService,
	userSvc service.UserService,
	storySvc service.StoryService,
	chapterSvc service.ChapterService,
	categorySvc service.CategoryService,
	commentSvc service.CommentService,
	pageSvc service.PageService,
	adSvc service.AdService,
	batchSvc service.BatchService,
	exportSvc service.ExportService,
	tracker *viewtracker.Tracker,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(authSvc, cfg, logger)
	userHandler := handler.NewUserHandler(userSvc)
	storyHandler := handler.NewStoryHandler(storySvc, chapterSvc, commentSvc, authSvc, tracker)
	chapterHandler := handler.NewChapterHandler(chapterSvc, commentSvc, authSvc, tracker)
	commentHandler := handler.NewCommentHandler(commentSvc, authSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	pageHandler := handler.NewPageHandler(pageSvc)
	adHandler := handler.NewAdHandler(adSvc)
	adminHandler := handler.NewAdminHandler(storySvc, commentSvc, userSvc, batchSvc, exportSvc)

	api := r.Group("/api")

	authHandler.RegisterRoutes(api.Group("/auth"))
	storyHandler.RegisterRoutes(api.Group("/stories"))
	chapterHandler.RegisterRoutes(api.Group("/chapters"))
	chapterHandler.RegisterReadRoutes(api.Group("/read"))
	commentHandler.RegisterRoutes(api.Group("/comments"))
	categoryHandler.RegisterRoutes(api.Group("/categories"))
	pageHandler.RegisterRoutes(api.Group("/pages"))
	adHandler.RegisterRoutes(api.Group("/ads"))

	userHandler.RegisterRoutes(api.Group("/users", middleware.AuthMiddleware(authSvc)))

	admin := api.Group("/admin", middleware.AuthMiddleware(authSvc), middleware.RequireAdmin())
	adminHandler.RegisterRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin.Group("/categories"))
	pageHandler.RegisterAdminRoutes(admin.Group("/pages"))
	adHandler.RegisterAdminRoutes(admin.Group("/ads"))

	return r
}
