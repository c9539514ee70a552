package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"periphd/internal/logging"
)

// metricsServer serves the Prometheus scrape endpoint on its own listener
// so the control socket and the metrics surface stay independent.
type metricsServer struct {
	server *http.Server
	logger *slog.Logger
}

func newMetricsServer(bind string, handler http.Handler, logger *slog.Logger) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &metricsServer{
		server: &http.Server{
			Addr:              bind,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logging.NewComponentLogger(logger, "metrics"),
	}
}

func (m *metricsServer) Start() {
	go func() {
		m.logger.Debug("metrics server listening", logging.String("bind", m.server.Addr))
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Warn("metrics server failed", logging.Error(err))
		}
	}()
}

func (m *metricsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		m.logger.Warn("metrics server shutdown failed", logging.Error(err))
	}
}
