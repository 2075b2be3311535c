package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/wanderbook/backend/internal/transport/middleware"
)

func InitRoutes(bookingHandler *BookingHandler, searchHandler *SearchHandler, tripHandler *TripHandler) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		// Commands (write side)
		bookings := api.Group("/bookings")
		{
			bookings.POST("/flight", bookingHandler.BookFlight)
			bookings.POST("/hotel", bookingHandler.BookHotel)
			bookings.POST("/activity", bookingHandler.BookActivity)
			bookings.POST("/package", bookingHandler.BookPackage)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}

		// Queries (read side)
		api.GET("/flights/search", searchHandler.SearchFlights)
		api.GET("/hotels/search", searchHandler.SearchHotels)
		api.GET("/packages/search", searchHandler.SearchPackages)
		api.GET("/offers/:id", searchHandler.GetOfferDetails)

		users := api.Group("/users")
		{
			users.GET("/:user_id/bookings", searchHandler.GetUserBookings)
			users.GET("/:user_id/trips", tripHandler.GetUserTrips)
			users.GET("/:user_id/trips/:trip_id", tripHandler.GetTripDetails)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
