package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davzso/pharmadex-api/config"
	"github.com/davzso/pharmadex-api/data"
	"github.com/davzso/pharmadex-api/handlers"
	"github.com/davzso/pharmadex-api/health"
	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser"
	"github.com/davzso/pharmadex-api/scheduler"
	"github.com/davzso/pharmadex-api/search"
	"github.com/davzso/pharmadex-api/server"
	"github.com/davzso/pharmadex-api/validation"
	"github.com/joho/godotenv"

	_ "net/http/pprof"
)

func main() {
	// Read the env variables; a missing .env file is fine, the environment
	// itself may carry the configuration
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithRetention("logs", cfg.LogRetentionWeeks)

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	parser := registryparser.NewRegistryParser(cfg.DataDir, cfg.RetentionYears)

	sched := scheduler.NewScheduler(dataContainer, parser)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	engine := search.NewEngine(dataContainer)
	validator := validation.NewDataValidator()
	healthChecker := health.NewHealthChecker(dataContainer)

	handler := handlers.NewHTTPHandler(dataContainer, engine, validator, healthChecker)
	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
