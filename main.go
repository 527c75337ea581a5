package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tbontb/config"
	httpLayer "tbontb/http"
	"tbontb/repository"
	"tbontb/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	simulationRepo := repository.NewSimulationRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	simulationService := service.NewSimulationService(cfg.ForecastSeed, simulationRepo, cache)

	simulationHandler := httpLayer.NewSimulationHandler(simulationService)
	mortgageHandler := httpLayer.NewMortgageHandler(simulationService)
	infoHandler := httpLayer.NewInfoHandler()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/api/v1/simulate/buying",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(simulationHandler.SimulateBuying),
		),
	)

	mux.Handle(
		"/api/v1/simulate/investment",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(simulationHandler.SimulateInvestment),
		),
	)

	mux.Handle(
		"/api/v1/simulate/compare",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(simulationHandler.SimulateComparison),
		),
	)

	mux.Handle(
		"/api/v1/mortgage/preview",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(mortgageHandler.Preview),
		),
	)

	mux.HandleFunc("/api/v1/parameters/defaults", infoHandler.Defaults)
	mux.HandleFunc("/api/v1/info", infoHandler.Info)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // las simulaciones grandes tardan
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
