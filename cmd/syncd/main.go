package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"offline_sync/internal/app"
	"offline_sync/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := app.NewLogger("info", os.Stdout)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = app.NewLogger(cfg.LogLevel, os.Stdout)

	os.Exit(run(cfg, logger))
}

// run returns the process exit code. Once the app is built it is closed on every path.
func run(cfg *config.Config, logger *slog.Logger) (code int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown", "error", err)
			code = 1
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGUSR1 {
					logger.Info("manual sync requested")
					a.Scheduler.TriggerNow()
					continue
				}
				logger.Info("received shutdown signal", "signal", sig)
				cancel()
				return
			}
		}
	}()

	logger.Info("starting offline sync daemon",
		"device_id", cfg.DeviceID,
		"api", cfg.API.BaseURL,
		"interval", cfg.Sync.Interval,
		"publisher", cfg.RabbitMQ.Enabled,
	)

	if err := a.Run(ctx); err != nil {
		logger.Error("daemon error", "error", err)
		return 1
	}
	return 0
}
