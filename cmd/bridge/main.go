package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/api"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/storage/sqlite"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	db, err := sqlite.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	appointments, err := sqlite.NewAppointmentStorage(db, log)
	if err != nil {
		return fmt.Errorf("failed to create appointment storage: %w", err)
	}
	callbacks, err := sqlite.NewCallbackStorage(db, log)
	if err != nil {
		return fmt.Errorf("failed to create callback storage: %w", err)
	}

	router := api.NewRouter(cfg, appointments, callbacks, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			logger.String("addr", addr),
			logger.String("model", cfg.OpenAI.Model))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}
