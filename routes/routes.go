package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"grandstay-backend/controllers"
	"grandstay-backend/middleware"
)

// SetupRouter wires the controllers onto the HTTP surface.
func SetupRouter(
	ac *controllers.AvailabilityController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	pc *controllers.PricingController,
	mc *controllers.MetricsController,
	ic *controllers.InquiryController,
	corsOrigins []string,
	log zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		availability := api.Group("/availability")
		{
			availability.GET("", ac.CheckAvailability)
			availability.GET("/summary", ac.GetSummary)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.ListBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.PATCH("/:id/status", bc.UpdateStatus)
			bookings.POST("/:id/cancel", bc.CancelBooking)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		pricing := api.Group("/pricing")
		{
			pricing.GET("", pc.GetPricing)
			pricing.PUT("/:roomType", pc.UpdatePricing)
		}

		api.GET("/metrics", mc.GetKPIs)

		inquiries := api.Group("/inquiries")
		{
			inquiries.GET("", ic.ListInquiries)
			inquiries.POST("", ic.CreateInquiry)
			inquiries.POST("/:id/reply", ic.ReplyToInquiry)
		}
	}

	return r
}
