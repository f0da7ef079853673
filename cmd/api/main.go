// Package main is the chefcourse API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pageza/chefcourse/backend/config"
	"github.com/pageza/chefcourse/backend/internal/database"
	"github.com/pageza/chefcourse/backend/internal/events"
	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/router"
	"github.com/pageza/chefcourse/backend/internal/server"
	"github.com/pageza/chefcourse/backend/internal/service"
)

const Version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "chefcourse-api",
		Short:        "Recipe and course HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chefcourse-api version %s\n", Version)
		},
	})
	return cmd
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := config.NewLogger(cfg, os.Stderr)
	slog.SetDefault(log)

	if cfg.Environment != config.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis only backs rate limiting; without it requests are not limited.
	var rdb *redis.Client
	if rdb, err = database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn("redis unavailable, rate limiting disabled", slog.String("error", err.Error()))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		amqpPub, err := events.NewAMQPPublisher(events.AMQPConfig{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", slog.String("error", err.Error()))
		} else {
			publisher = amqpPub
		}
	}
	defer publisher.Close()

	var presigner service.ImagePresigner
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Warn("s3 unavailable, uploads disabled", slog.String("error", err.Error()))
		} else {
			presigner = s3cfg
		}
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(db, tokens, publisher, log)

	engine := router.SetupRouter(router.Deps{
		Auth:    authService,
		Tokens:  tokens,
		Chefs:   service.NewChefService(db, publisher, log),
		Recipes: service.NewRecipeService(db, publisher, log),
		Courses: service.NewCourseService(db, publisher, log),
		Images:  service.NewImageService(presigner, log),
		Metrics: metrics.New(),
		Redis:   rdb,
		DBPing: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		Logger:         log,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	log.Info("starting server",
		slog.String("addr", cfg.ServerAddr()),
		slog.String("environment", string(cfg.Environment)))
	return server.New(cfg.ServerAddr(), engine, log).Start(ctx)
}
