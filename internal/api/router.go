package api

import (
	"net/http"

	"art-returns/internal/api/handlers"
	"art-returns/internal/api/middleware"
	"art-returns/internal/config"
	"art-returns/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware, handlers and routes. Static file serving is left
// to the caller.
func NewRouter(cfg *config.ServerConfig, cache *data.EvaluationCache, log *zap.Logger) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	// Initialize handlers
	presetHandler := handlers.NewPresetHandler(cfg.PresetDir, log)
	evaluationHandler := handlers.NewEvaluationHandler(presetHandler, cache, log)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/evaluate", evaluationHandler.Evaluate)
		api.POST("/evaluate/compare", evaluationHandler.CompareEvaluations)
		api.GET("/evaluations/:id", evaluationHandler.GetEvaluation)
		api.GET("/evaluations/:id/export", evaluationHandler.ExportEvaluation)

		api.POST("/sweep", evaluationHandler.Sweep)
		api.POST("/scenario", evaluationHandler.Scenario)

		api.GET("/assumptions", handlers.ListAssumptions)
		api.GET("/solvers", handlers.ListSolvers)
		api.GET("/presets", presetHandler.ListPresets)
	}

	return router
}
