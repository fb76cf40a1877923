package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
	"hotel-pms/services"
)

// Controllers groups every handler the router needs.
type Controllers struct {
	Auth        *controllers.AuthController
	Rooms       *controllers.RoomController
	Catalog     *controllers.CatalogController
	Guests      *controllers.GuestController
	Booking     *controllers.BookingController
	Reservation *controllers.ReservationController
	Payments    *controllers.PaymentController
	Dashboard   *controllers.DashboardController
	Settings    *controllers.SettingsController
}

// Options are the router's environment-driven settings.
type Options struct {
	CorsOrigins string
	UploadDir   string
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the public read endpoints and the staff-only writes.
func SetupRouter(ctl Controllers, auth *services.AuthService, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	origins := parseCorsOrigins(opts.CorsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireStaff := middleware.Auth(auth)

	api := r.Group("/api")
	{
		api.POST("/auth/login", ctl.Auth.Login)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", requireStaff, ctl.Rooms.CreateRoom)
			rooms.PUT("/:id", requireStaff, ctl.Rooms.UpdateRoom)
			rooms.PATCH("/:id/status", requireStaff, ctl.Rooms.UpdateRoomStatus)
			rooms.DELETE("/:id", requireStaff, ctl.Rooms.DeleteRoom)
			rooms.POST("/:id/photos", requireStaff, ctl.Rooms.UploadPhoto)
		}
		api.GET("/amenities", ctl.Catalog.GetAmenities)
		api.GET("/services", ctl.Catalog.GetServices)

		// guest details and money stay behind the staff token, reads included
		guests := api.Group("/guests", requireStaff)
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
		}

		booking := api.Group("/booking")
		{
			booking.POST("/availability", ctl.Booking.Availability)
			booking.POST("/quote", ctl.Booking.Quote)
			booking.POST("/confirm", requireStaff, ctl.Booking.Confirm)
		}

		reservations := api.Group("/reservations", requireStaff)
		{
			reservations.GET("", ctl.Reservation.GetReservations)
			reservations.GET("/:id", ctl.Reservation.GetReservation)
			reservations.POST("/:id/confirm", ctl.Reservation.Confirm)
			reservations.POST("/:id/check-in", ctl.Reservation.CheckIn)
			reservations.POST("/:id/check-out", ctl.Reservation.CheckOut)
			reservations.POST("/:id/cancel", ctl.Reservation.Cancel)
			reservations.PUT("/:id/room", ctl.Reservation.ChangeRoom)
			reservations.GET("/:id/payments", ctl.Payments.GetPayments)
			reservations.POST("/:id/payments", ctl.Payments.RecordPayment)
		}

		api.GET("/calendar", requireStaff, ctl.Reservation.Calendar)
		api.GET("/dashboard", requireStaff, ctl.Dashboard.GetStats)

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", ctl.Settings.GetHotelSettings)
			settings.PUT("/hotel", requireStaff, ctl.Settings.UpdateHotelSettings)
		}
	}

	return r
}
