package routes

import (
	"stresshub/controllers"
	"stresshub/middlewares"
	"stresshub/models"

	"github.com/gin-gonic/gin"
)

// SetupTaskRoutes registers the task tracking endpoints. Supervisor
// endpoints cover assigning and managing team members' tasks.
func SetupTaskRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", controllers.CreateTask)
		tasks.GET("/my", controllers.GetMyTasks)
		tasks.GET("/:id", controllers.GetTask)
		tasks.PUT("/:id", controllers.UpdateTask)
		tasks.DELETE("/:id", controllers.DeleteTask)
		tasks.PATCH("/:id/status", controllers.UpdateTaskStatus)

		tasks.GET("/team-members",
			middlewares.RequireRoles(models.RoleSupervisor, models.RoleHRManager),
			controllers.GetTeamMembers)

		supervisor := tasks.Group("/supervisor")
		supervisor.Use(middlewares.RequireRoles(models.RoleSupervisor))
		{
			supervisor.POST("/assign", controllers.AssignTask)
			supervisor.GET("/team", controllers.GetTeamTasks)
			supervisor.PUT("/:id", controllers.UpdateTeamTask)
			supervisor.DELETE("/:id", controllers.DeleteTeamTask)
		}
	}
}
