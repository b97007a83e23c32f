package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/padguide/internal/api/handlers"
	"github.com/codyseavey/padguide/internal/services"
)

// RouterConfig holds the tunables read from the environment by main.
type RouterConfig struct {
	QueryRateLimit float64 // requests per second shared by all query endpoints
	QueryRateBurst int
}

func SetupRouter(indexService *services.IndexService, cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	monsterHandler := handlers.NewMonsterHandler(indexService)
	limited := rateLimitMiddleware(cfg.QueryRateLimit, cfg.QueryRateBurst)

	// API routes
	api := router.Group("/api")
	{
		monsters := api.Group("/monsters")
		monsters.Use(limited)
		{
			monsters.GET("/find", monsterHandler.FindMonster)
			monsters.GET("/find2", monsterHandler.FindMonsterConstrained)
			monsters.GET("/:number", monsterHandler.GetMonster)
		}

		index := api.Group("/index")
		{
			index.GET("/status", monsterHandler.GetIndexStatus)
			index.POST("/rebuild", limited, monsterHandler.RebuildIndex)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if !indexService.Ready() {
			status = "starting"
		}
		c.JSON(200, gin.H{"status": status})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
