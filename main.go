package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/triautami12/aplikasi-lapor-fasilkom/config"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/handler"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/messaging"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/middleware"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/service"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	kv, err := storage.NewPostgres(db)
	if err != nil {
		log.Fatalf("Failed to prepare storage: %v", err)
	}

	// Load collections; missing or corrupt blobs fall back to seed/empty.
	reportRepo := repository.NewReportRepository(kv)
	reportRepo.Load()
	userRepo := repository.NewUserRepository(kv)
	userRepo.Load()
	notificationRepo := repository.NewNotificationRepository(kv)
	notificationRepo.Load()

	// Initialize SSE hub
	sseHub := messaging.NewSSEHub()
	go sseHub.Run()

	// Connect to RabbitMQ. The broker is optional: without it, mutations and
	// stored notifications still work, only live streaming and admin event
	// notifications are skipped.
	var rmq *messaging.RabbitMQ
	var consumer *messaging.EventConsumer
	if cfg.RabbitMQ.Host != "" {
		rmq, err = messaging.NewRabbitMQ(
			cfg.RabbitMQ.Host,
			cfg.RabbitMQ.Port,
			cfg.RabbitMQ.User,
			cfg.RabbitMQ.Password,
		)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		log.Println("Connected to RabbitMQ")

		consumer = messaging.NewEventConsumer(rmq, notificationRepo, sseHub, cfg.Admin.Identifier)
		consumer.Start()
		log.Println("Event consumer started")
	} else {
		log.Println("RabbitMQ not configured, running without messaging")
	}

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, sseHub)
	var publisher service.EventPublisher
	if rmq != nil {
		publisher = rmq
	}
	reportService := service.NewReportService(reportRepo, notificationService, publisher)
	authService := service.NewAuthService(userRepo, cfg.JWT, cfg.Admin)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService, authService)

	// Setup Gin router
	r := gin.Default()

	r.GET("/health", authHandler.Health)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.RequireAuth(authService), authHandler.Me)
	}

	// Report routes
	r.GET("/reports", reportHandler.GetReports)
	r.GET("/reports/:id", reportHandler.GetReportByID)
	r.GET("/categories", reportHandler.GetCategories)

	authed := r.Group("/", middleware.RequireAuth(authService))
	{
		authed.POST("/reports", reportHandler.CreateReport)
		authed.PATCH("/reports/:id/status", reportHandler.UpdateStatus)
		authed.POST("/reports/:id/comments", reportHandler.AddComment)
		authed.GET("/notifications", notificationHandler.GetNotifications)
		authed.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	// EventSource cannot set headers, so the stream authenticates itself.
	r.GET("/notifications/stream", notificationHandler.StreamNotifications)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutdown signal received...")
		if consumer != nil {
			consumer.Stop()
		}
		log.Println("Service stopped gracefully")
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Lapor Fasilkom service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
