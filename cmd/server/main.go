package main

import (
	"log"
	"strconv"

	"stresshub/config"
	"stresshub/db"
	"stresshub/middlewares"
	"stresshub/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Cors.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-Id", "X-User-Email", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// The question list is static and needs no identity
	router.GET("/stress/questions", routes.GetStressQuestionsRouteHandler)

	// Everything else requires the gateway-injected identity headers
	identified := router.Group("/")
	identified.Use(middlewares.Identity())
	{
		routes.SetupStressRoutes(identified)
		routes.SetupTaskRoutes(identified)
		routes.SetupConsultantRoutes(identified)
		routes.SetupBookingRoutes(identified)
		routes.SetupDashboardRoutes(identified)
		routes.SetupNotificationRoutes(identified)
	}

	return router
}
