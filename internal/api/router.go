package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceandiag/ocean-diagnostics-go/internal/config"
	"github.com/oceandiag/ocean-diagnostics-go/internal/handler"
	"github.com/oceandiag/ocean-diagnostics-go/internal/middleware"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
)

// SetupRouter wires the HTTP surface.
func SetupRouter(cfg *config.Config, diagService *service.DiagnosticsService, taskService *service.AnalysisTaskService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Ocean Diagnostics API is running",
		})
	})

	spatialHandler := handler.NewSpatialHandler(diagService)
	statsHandler := handler.NewStatsHandler(diagService)
	taskHandler := handler.NewAnalysisTaskHandler(taskService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		sp := api.Group("/spatial")
		{
			sp.POST("/radius", spatialHandler.RadiusQuery)
			sp.POST("/nearest", spatialHandler.NearestQuery)
			sp.POST("/track/summary", spatialHandler.TrackSummary)
		}

		st := api.Group("/stats")
		{
			st.POST("/distribution", statsHandler.Distribution)
			st.POST("/extrema", statsHandler.Extrema)
			st.POST("/tidal-filter", statsHandler.TidalFilter)
			st.POST("/compare", statsHandler.Compare)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", middleware.Auth(cfg.JWTSecret), taskHandler.CreateTask)
		}
	}

	return r
}
