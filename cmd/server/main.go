package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/eskalate/jobboard/docs"

	"github.com/eskalate/jobboard/internal/auth"
	"github.com/eskalate/jobboard/internal/cache"
	"github.com/eskalate/jobboard/internal/config"
	"github.com/eskalate/jobboard/internal/db"
	"github.com/eskalate/jobboard/internal/handler"
	"github.com/eskalate/jobboard/internal/mail"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
	"github.com/eskalate/jobboard/internal/router"
	"github.com/eskalate/jobboard/internal/service"
	"github.com/eskalate/jobboard/internal/storage"
)

// @title Job Board API
// @version 1.0
// @description Job board backend with applicant/company accounts, postings and applications.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Application{}, &model.Job{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Job{}, &model.Application{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.New(redisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	outbox := mail.NewOutbox(redisClient, mailer)
	fileStore, err := storage.NewCloudinaryStore(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go outbox.Run(ctx)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, outbox, cfg.BaseURL)
	jobService := service.NewJobService(jobRepo, cacheClient)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, userRepo, fileStore, outbox)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieExpireDays)
	jobHandler := handler.NewJobHandler(jobService)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	// Register routes
	router.Register(
		e,
		auth.Middleware(jwtService, userRepo),
		authHandler,
		jobHandler,
		applicationHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
