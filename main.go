package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emi-planner/config"
	httpLayer "emi-planner/http"
	"emi-planner/repository"
	"emi-planner/service"
)

func main() {
	cfg := config.Load()

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	var scenarioRepo repository.ScenarioRepository
	if cfg.DatabaseURL != "" {
		pgRepo, err := repository.NewScenarioRepositoryPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		defer pgRepo.Close()
		scenarioRepo = pgRepo
	} else {
		scenarioRepo = repository.NewScenarioRepositoryMemory()
	}

	scheduleService := service.NewScheduleService(cache)
	aiService := service.NewAIService()
	scheduleHandler := httpLayer.NewScheduleHandler(scheduleService, aiService)

	scenarioService := service.NewScenarioService(scenarioRepo, scheduleService)
	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/schedule/baseline", limited(scheduleHandler.Baseline))
	mux.Handle("/schedule/recompute", limited(scheduleHandler.Recompute))
	mux.Handle("/scenario/save", limited(scenarioHandler.Save))
	mux.Handle("/scenario/get", limited(scenarioHandler.Get))
	mux.Handle("/scenario/recompute", limited(scenarioHandler.Recompute))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API corriendo en http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
