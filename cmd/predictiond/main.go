package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"machinery-gateway/config"
	"machinery-gateway/internal/classifier"
	"machinery-gateway/internal/predapi"
)

func main() {
	logger := log.New(os.Stdout, "predictiond ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	model, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		logger.Fatalf("failed to load model from %s: %v", cfg.Model.Path, err)
	}
	if model.Trained() {
		logger.Printf("trained model loaded from %s", cfg.Model.Path)
	} else {
		logger.Println("no persisted model found, starting untrained")
	}

	handler := predapi.NewHandler(model, cfg.Model.Path)
	router := predapi.NewRouter(handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Model.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Model.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
