package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"art-returns/internal/api"
	"art-returns/internal/config"
	"art-returns/internal/data"
	"art-returns/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Get configuration from environment (and .env when present)
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if wd, err := os.Getwd(); err == nil {
		log.Info("working directory", zap.String("dir", wd))
	}

	// Set up Gin router
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := data.NewEvaluationCache(cfg.CacheTTL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cache.Run(ctx, max(cfg.CacheTTL/2, time.Second))

	router := api.NewRouter(cfg, cache, log)

	// Serve static files from web/dist (if it exists)
	staticDir := cfg.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		// Serve static assets
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			// Don't serve index.html for API routes
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(staticDir + "/index.html")
		})
		log.Info("serving static files", zap.String("dir", staticDir))
	} else {
		log.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
	}

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
