package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"ultimedia/internal/caching"
	"ultimedia/internal/config"
	"ultimedia/internal/handlers"
	"ultimedia/internal/jobs/background"
	"ultimedia/internal/middleware"
	"ultimedia/internal/repositories"
	"ultimedia/internal/services"
	"ultimedia/pkg/database"
)

func main() {
	cfg, err := config.New(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage for rendered invoice PDFs
	storageSvc, err := services.NewMinioStorage(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
		cfg.Minio.UseSSL, cfg.Minio.Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(ctx); err != nil {
		log.Printf("WARN: could not ensure invoice bucket exists: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	catalogRepo := repositories.NewCatalogRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	profileRepo := repositories.NewProfileRepo(pool)

	// Services
	catalogSvc := services.NewCatalogService(catalogRepo, cacheSvc)
	numberGen := services.NewInvoiceNumberGenerator(invoiceRepo, cfg.InvoiceNumberFallback)
	bookingSvc := services.NewBookingService(
		catalogRepo, bookingRepo, invoiceRepo, catalogSvc, numberGen, cfg.TransportRate())
	pdfSvc := services.NewPDFService(cfg.Company)
	mailerSvc := services.NewSMTPMailer(cfg.SMTP)
	invoiceSvc := services.NewInvoiceService(
		invoiceRepo, bookingRepo, paymentRepo, profileRepo, catalogRepo,
		pdfSvc, storageSvc, mailerSvc)

	// Handlers
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to configure authentication: %v", err)
	}

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	bookings := api.Group("/bookings")
	bookings.GET("/services", catalogHandlers.GetServices)
	bookings.GET("/equipment", catalogHandlers.GetEquipment)

	bookingsAuth := api.Group("/bookings", authMiddleware)
	bookingsAuth.POST("/calculate", bookingHandlers.CalculatePrice)
	bookingsAuth.POST("/create", bookingHandlers.CreateBooking)
	bookingsAuth.GET("/my-bookings", bookingHandlers.MyBookings)

	invoices := api.Group("/invoices", authMiddleware)
	invoices.GET("/my-invoices", invoiceHandlers.MyInvoices)
	invoices.GET("/:id", invoiceHandlers.GetInvoice)
	invoices.GET("/:id/download", invoiceHandlers.DownloadInvoice)
	invoices.POST("/:id/email", invoiceHandlers.EmailInvoice)
	invoices.GET("/:id/payments", invoiceHandlers.ListPayments)
	invoices.POST("/:id/payments", invoiceHandlers.RecordPayment)

	// Background jobs
	scheduler, err := background.NewJobScheduler(bookingSvc, catalogSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
