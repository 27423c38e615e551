package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/config"
	"github.com/navfs/navigator/internal/logging"
	"github.com/navfs/navigator/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.String("port", "", "Listen port (overrides config)")
	root := flag.String("root", "", "Starting directory for sessions (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Dispatch.Root = *root
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	srv := server.New(cfg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
