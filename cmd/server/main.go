package main

import (
	"net/http"
	"os"

	_ "pulseadmin/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"pulseadmin/internal/auth"
	"pulseadmin/internal/cache"
	"pulseadmin/internal/config"
	"pulseadmin/internal/db"
	"pulseadmin/internal/handler"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/repository"
	"pulseadmin/internal/router"
	"pulseadmin/internal/service"
)

// @title Pulse Admin API
// @version 1.0
// @description Multi-tenant administrative backend with role-based access control and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.UploadedFile{},
			&model.Notification{},
			&model.Task{},
			&model.UserProfile{},
			&model.Organization{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
		log.Info("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.UserProfile{},
		&model.Task{},
		&model.Notification{},
		&model.UploadedFile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	m := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	orgRepo := repository.NewOrganizationRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, profileRepo, orgRepo, jwtService, tokenStore, m)
	userService := service.NewUserService(userRepo, profileRepo, orgRepo, m)
	orgService := service.NewOrganizationService(orgRepo, profileRepo, m)
	taskService := service.NewTaskService(taskRepo, cacheClient, m)
	notificationService := service.NewNotificationService(notificationRepo, m)
	fileService := service.NewFileService(fileRepo, m)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	taskHandler := handler.NewTaskHandler(taskService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	fileHandler := handler.NewFileHandler(fileService)

	// Register routes
	router.Register(
		e,
		cfg,
		m,
		authService,
		authHandler,
		userHandler,
		orgHandler,
		taskHandler,
		notificationHandler,
		fileHandler,
	)

	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
