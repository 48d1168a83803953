package routes

import (
	"stresshub/controllers"
	"stresshub/middlewares"
	"stresshub/models"

	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes registers the role-scoped dashboard endpoints
func SetupDashboardRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/employee",
			middlewares.RequireRoles(models.RoleEmployee, models.RoleSupervisor, models.RoleHRManager),
			controllers.EmployeeDashboard)
		dashboard.GET("/supervisor",
			middlewares.RequireRoles(models.RoleSupervisor),
			controllers.SupervisorDashboard)
		dashboard.GET("/hr",
			middlewares.RequireRoles(models.RoleHRManager),
			controllers.HRDashboard)
		dashboard.GET("/psychiatrist",
			middlewares.RequireRoles(models.RolePsychiatrist),
			controllers.PsychiatristDashboard)
	}
}
