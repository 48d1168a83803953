package routes

import (
	"stresshub/controllers"
	"stresshub/websocket"

	"github.com/gin-gonic/gin"
)

// SetupNotificationRoutes registers notification endpoints and the
// websocket subscription
func SetupNotificationRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", controllers.GetNotifications)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
		notifications.GET("/ws", websocket.NotificationSocketHandler)
	}
}
