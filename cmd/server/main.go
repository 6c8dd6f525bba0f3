package main

import (
	"log"

	"github.com/oceandiag/ocean-diagnostics-go/internal/api"
	"github.com/oceandiag/ocean-diagnostics-go/internal/config"
	"github.com/oceandiag/ocean-diagnostics-go/internal/database"
	"github.com/oceandiag/ocean-diagnostics-go/internal/repository"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	cache := service.NewResultCache(cfg.RedisAddr, cfg.RedisPass, cfg.CacheTTL)
	diagService := service.NewDiagnosticsService(cache)

	taskRepo := repository.NewAnalysisTaskRepository(database.GetDB())
	taskService := service.NewAnalysisTaskService(taskRepo, diagService)

	router := api.SetupRouter(cfg, diagService, taskService)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
