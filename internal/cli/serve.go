package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/app"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/cache"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/catalog"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/config"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/service"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/transport/rest"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the assessment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	// MongoDB connection
	mongoClient, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(context.Background())
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// Redis is optional: without it statistics are computed per request.
	var statsCache cache.StatsCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return err
		}
		log.Println("Connected to Redis")

		statsTTL := config.Duration(cfg.Redis.StatsTTL, 5*time.Minute)
		statsCache = cache.NewStatsCache(rdb, statsTTL)
	}

	policy := repository.DefaultRetryPolicy()
	if cfg.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.Multiplier > 0 {
		policy.Multiplier = cfg.Retry.Multiplier
	}
	policy.BaseDelay = config.Duration(cfg.Retry.BaseDelay, policy.BaseDelay)

	// Wire the application
	assessmentRepo := repository.NewAssessmentRepo(db, policy)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, catalog.New(), statsCache)

	application := &app.App{
		AssessmentRepo:    assessmentRepo,
		StatsCache:        statsCache,
		AssessmentService: assessmentSvc,
	}

	router := rest.NewRouter(&rest.Container{
		AssessmentService: application.AssessmentService,
	})

	srv := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", finalPort)
		log.Println("Endpoints:")
		log.Println("  POST   /v1/assessments")
		log.Println("  GET    /v1/assessments")
		log.Println("  GET    /v1/assessments/{id}")
		log.Println("  GET    /v1/assessments/{id}/report")
		log.Println("  DELETE /v1/assessments/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Println("Shutting down server...")
	case <-ctx.Done():
		log.Println("Context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
