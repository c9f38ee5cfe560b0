package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(farmHandler *handlers.FarmHandler, weatherHandler *handlers.WeatherHandler, chatHandler *handlers.ChatHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/farms", farmHandler.List)
		api.POST("/farms", farmHandler.Create)
		api.DELETE("/farms/:id", farmHandler.Delete)
		api.GET("/farms/:id/weather", weatherHandler.FarmWeather)
		api.GET("/crops", farmHandler.Crops)
		api.POST("/chat", chatHandler.Ask)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
