package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/routes"
	"hotel-pms/services"
	"hotel-pms/storage"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	store, err := storage.New(context.Background(), storage.Config{
		Driver:        cfg.StorageDriver,
		S3Bucket:      cfg.S3Bucket,
		S3Region:      cfg.S3Region,
		S3PublicBase:  cfg.S3PublicBaseURL,
		UploadDir:     cfg.UploadDir,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("❌ Storage init failed: %v", err)
	}
	log.Printf("✅ File storage ready (%s)", cfg.StorageDriver)

	// Initialize services
	roomService := services.NewRoomService(db, store)
	guestService := services.NewGuestService(db)
	catalogService := services.NewCatalogService(db)
	reservationService := services.NewReservationService(db, roomService, guestService, catalogService)
	paymentService := services.NewPaymentService(db, store)
	dashboardService := services.NewDashboardService(db)
	settingsService := services.NewSettingsService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)

	// Initialize controllers
	ctl := routes.Controllers{
		Auth:        controllers.NewAuthController(authService),
		Rooms:       controllers.NewRoomController(roomService),
		Catalog:     controllers.NewCatalogController(catalogService),
		Guests:      controllers.NewGuestController(guestService),
		Booking:     controllers.NewBookingController(reservationService),
		Reservation: controllers.NewReservationController(reservationService),
		Payments:    controllers.NewPaymentController(paymentService),
		Dashboard:   controllers.NewDashboardController(dashboardService),
		Settings:    controllers.NewSettingsController(settingsService),
	}

	uploadDir := ""
	if cfg.StorageDriver == "local" {
		uploadDir = cfg.UploadDir
	}
	router := routes.SetupRouter(ctl, authService, routes.Options{
		CorsOrigins: cfg.CorsOrigins,
		UploadDir:   uploadDir,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
