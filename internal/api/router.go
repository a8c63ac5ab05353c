package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"machinery-gateway/config"
	"machinery-gateway/internal/mw"
	"machinery-gateway/internal/proxy"
	"machinery-gateway/internal/store"
)

// NewRouter creates and configures the gateway router.
func NewRouter(cfg *config.ServerConfig, s store.Store, prediction *proxy.Client) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, prediction)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API gateway active", "version": "1.0.0"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		users := api.Group("/users")
		{
			users.POST("", handler.CreateUser)
			users.GET("", caching, handler.ListUsers)
			users.POST("/login", handler.Login)
			users.GET("/:id", handler.GetUser)
			users.PATCH("/:id", handler.UpdateUser)
			users.DELETE("/:id", handler.DeleteUser)
		}

		machines := api.Group("/machines")
		{
			machines.POST("", handler.CreateMachine)
			machines.GET("", caching, handler.ListMachines)
			machines.GET("/:id", handler.GetMachine)
			machines.PATCH("/:id", handler.UpdateMachine)
			machines.DELETE("/:id", handler.DeleteMachine)
		}

		readings := api.Group("/readings")
		{
			readings.POST("", handler.CreateReading)
			readings.GET("", caching, handler.ListReadings)
			readings.GET("/:id", handler.GetReading)
			readings.PATCH("/:id", handler.UpdateReading)
			readings.DELETE("/:id", handler.DeleteReading)
		}

		services := api.Group("/services")
		{
			services.POST("/predict", handler.Predict)
			services.GET("/status", handler.ServicesStatus)
		}
	}

	return r
}
