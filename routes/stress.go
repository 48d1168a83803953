package routes

import (
	"stresshub/controllers"
	"stresshub/middlewares"
	"stresshub/models"

	"github.com/gin-gonic/gin"
)

// SetupStressRoutes registers the stress assessment endpoints.
// Psychiatrists are consultants, not assessed staff, so the whole group
// is scoped to employees, supervisors and HR managers.
func SetupStressRoutes(rg *gin.RouterGroup) {
	stress := rg.Group("/stress")
	stress.Use(middlewares.RequireRoles(models.RoleEmployee, models.RoleSupervisor, models.RoleHRManager))
	{
		stress.POST("/submit-assessment", controllers.SubmitStressAssessment)
		stress.GET("/my-score", controllers.GetMyStressScore)
		stress.GET("/my-history", controllers.GetMyStressHistory)
		stress.GET("/workload-details", controllers.GetWorkloadDetails)
		stress.PUT("/update-sharing", controllers.UpdateSharing)
		stress.GET("/team-scores", controllers.GetTeamStressScores)
	}
}

// GetStressQuestionsRouteHandler serves the PSS-10 questions
func GetStressQuestionsRouteHandler(c *gin.Context) {
	controllers.GetStressQuestions(c)
}
