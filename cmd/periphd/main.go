package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periphd/internal/config"
	"periphd/internal/daemon"
	"periphd/internal/history"
	"periphd/internal/ipc"
	"periphd/internal/logging"
	"periphd/internal/metrics"
	"periphd/internal/notifications"
	"periphd/internal/orchestrator"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	recorder := metrics.NewPrometheusRecorder()

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg)
		if err != nil {
			logger.Error("open event journal", logging.Error(err))
			os.Exit(1)
		}
	}

	notifier := notifications.NewService(cfg)

	components, interval, caps := buildComponents(cfg, logger, recorder)
	orch := orchestrator.New(caps, interval, components, newSource(cfg), logger, recorder)

	d, err := daemon.New(cfg, orch, store, notifier, recorder.Handler(), logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	wireHooks(d, components)

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		os.Exit(1)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Warn("daemon start", logging.Error(err))
	}

	<-ctx.Done()
	logger.Info("periphd shutting down")
}
