package routes

import (
	"stresshub/controllers"
	"stresshub/middlewares"
	"stresshub/models"

	"github.com/gin-gonic/gin"
)

// SetupConsultantRoutes registers the consultant directory. Staff roles
// can browse it; only HR managers manage the records.
func SetupConsultantRoutes(rg *gin.RouterGroup) {
	consultants := rg.Group("/consultants")
	{
		staff := middlewares.RequireRoles(models.RoleEmployee, models.RoleSupervisor, models.RoleHRManager)
		consultants.GET("", staff, controllers.GetAvailableConsultants)
		consultants.GET("/:id", staff, controllers.GetConsultant)

		hr := middlewares.RequireRoles(models.RoleHRManager)
		consultants.POST("", hr, controllers.CreateConsultant)
		consultants.PUT("/:id", hr, controllers.UpdateConsultant)
		consultants.DELETE("/:id", hr, controllers.DeleteConsultant)
	}
}

// SetupBookingRoutes registers the consultation booking lifecycle
func SetupBookingRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		staff := middlewares.RequireRoles(models.RoleEmployee, models.RoleSupervisor, models.RoleHRManager)
		bookings.POST("", staff, controllers.CreateBooking)
		bookings.GET("/my", staff, controllers.GetMyBookings)
		bookings.PUT("/:id", staff, controllers.RescheduleBooking)
		bookings.DELETE("/:id", staff, controllers.CancelBooking)

		managers := middlewares.RequireRoles(models.RoleSupervisor, models.RoleHRManager)
		bookings.POST("/for-employee", managers, controllers.CreateBookingForEmployee)
		bookings.GET("/team", managers, controllers.GetTeamBookings)

		bookings.PATCH("/:id/status",
			middlewares.RequireRoles(models.RolePsychiatrist, models.RoleHRManager),
			controllers.UpdateBookingStatus)
	}
}
