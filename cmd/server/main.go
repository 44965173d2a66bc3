// Package main is the entry point for the orderdesk API server.
// One process serves the cart-builder sessions for the admin dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"orderdesk/internal/domain/cart"
	"orderdesk/internal/domain/checkout"
	"orderdesk/internal/infrastructure/gateway"
	v1 "orderdesk/internal/infrastructure/http/v1"
	"orderdesk/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Local development keeps settings in .env; absence is fine.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting orderdesk server")

	// --- Commerce API gateway ---
	commerceURL := mustEnv("COMMERCE_API_URL")
	httpClient := gateway.NewHTTPClient(getEnvDuration("COMMERCE_API_TIMEOUT", gateway.DefaultTimeout))

	catalogClient := gateway.NewCatalogClient(commerceURL, httpClient)
	salesClient := gateway.NewOrderClient(commerceURL, getEnv("SALES_CREATE_PATH", "/api/sales"), httpClient)
	purchasesClient := gateway.NewOrderClient(commerceURL, getEnv("PURCHASES_CREATE_PATH", "/api/purchases"), httpClient)

	checkoutService := checkout.NewService(map[cart.Mode]checkout.Creator{
		cart.ModeSale:     salesClient,
		cart.ModePurchase: purchasesClient,
	})

	// --- Cart sessions ---
	registry := cart.NewRegistry(getEnvDuration("SESSION_TTL", 2*time.Hour))
	go registry.Run(logger.WithLogger(ctx, log), getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute))

	// --- HTTP server ---
	router := v1.NewRouter(v1.RouterConfig{
		Registry:      registry,
		CatalogSource: catalogClient,
		Checkout:      checkoutService,
		Logger:        log,
		Version:       version,
	})

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("graceful shutdown failed", "error", err)
	}
}

// --- env helpers ---

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
