package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmlog/filmlog/internal/auth"
	"github.com/filmlog/filmlog/internal/config"
	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/internal/handler"
	"github.com/filmlog/filmlog/internal/logger"
	"github.com/filmlog/filmlog/internal/middleware"
	"github.com/filmlog/filmlog/internal/scheduler"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "path to config file")
	enableScheduler := flag.Bool("scheduler", true, "enable maintenance scheduler")
	flag.Parse()

	// Load configuration first
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with configured level
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.API.Port),
	)

	// Initialize database
	if err := database.Init(&cfg.Database, log); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// Token issuer gets the secret here; nothing else reads it
	issuer := auth.NewIssuer(auth.JWTConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.JWTIssuer,
		TTL:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	})

	// Initialize Gin
	if !cfg.API.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZap(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.API.CORS, cfg.API.CORSOrigin))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.Error(c, 405, "Method not allowed")
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(log, issuer)
	rollHandler := handler.NewRollHandler(log)
	photoHandler := handler.NewPhotoHandler(log)
	tagHandler := handler.NewTagHandler(log)
	lensHandler := handler.NewLensHandler(log)
	searchHandler := handler.NewSearchHandler(log)

	// Setup routes
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		user := api.Group("/user/:user_id", middleware.RequireAuth(issuer, log))
		{
			user.GET("/search", searchHandler.Search)

			user.GET("/rolls", rollHandler.List)
			user.POST("/rolls", rollHandler.Create)
			user.GET("/rolls/:roll_id", rollHandler.Get)
			user.PUT("/rolls/:roll_id", rollHandler.Update)
			user.DELETE("/rolls/:roll_id", rollHandler.Delete)

			user.GET("/rolls/:roll_id/photos", photoHandler.ListByRoll)
			user.POST("/rolls/:roll_id/photos", photoHandler.Create)
			user.PUT("/photos/:photo_id", photoHandler.Update)
			user.DELETE("/photos/:photo_id", photoHandler.Delete)

			user.GET("/tags", tagHandler.List)
			user.POST("/tags", tagHandler.Create)
			user.DELETE("/tags/:tag_id", tagHandler.Delete)

			user.GET("/lenses", lensHandler.List)
			user.POST("/lenses", lensHandler.Create)
			user.DELETE("/lenses/:lens_id", lensHandler.Delete)
		}
	}

	// Start scheduler if enabled
	var sched *scheduler.Scheduler
	if *enableScheduler {
		sched = scheduler.New(cfg, log)
		if err := sched.Start(); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
		log.Info("scheduler enabled")
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info("starting HTTP server", zap.Int("port", cfg.API.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
