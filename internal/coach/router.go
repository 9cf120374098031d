package coach

import (
	"github.com/gin-gonic/gin"
)

func SetupCoachRoutes(rg *gin.RouterGroup, controller *Controller) {
	coach := rg.Group("/coach")
	{
		// Layout and availability
		coach.GET("/layout", controller.GetLayout)             // GET /api/v1/coach/layout
		coach.GET("/availability", controller.GetAvailability) // GET /api/v1/coach/availability
		coach.GET("/seats/search", controller.SearchSeats)     // GET /api/v1/coach/seats/search?count=N

		// Reservation flow
		coach.POST("/reservations", controller.Reserve)                 // POST /api/v1/coach/reservations
		coach.GET("/reservations", controller.ListReservations)         // GET /api/v1/coach/reservations
		coach.GET("/reservations/latest", controller.LatestReservation) // GET /api/v1/coach/reservations/latest
	}
}
