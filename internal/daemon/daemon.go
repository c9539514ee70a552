package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"periphd/internal/config"
	"periphd/internal/history"
	"periphd/internal/logging"
	"periphd/internal/notifications"
	"periphd/internal/orchestrator"
)

// Daemon coordinates the orchestrator and its surrounding services and
// enforces single-instance execution through a file lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	orch     *orchestrator.Orchestrator
	store    *history.Store
	notifier notifications.Service
	hotplug  *hotplugMonitor
	metrics  *metricsServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool                `json:"running"`
	PID          int                 `json:"pid"`
	LockPath     string              `json:"lock_path"`
	SocketPath   string              `json:"socket_path"`
	HistoryPath  string              `json:"history_path,omitempty"`
	SessionID    string              `json:"session_id,omitempty"`
	Orchestrator orchestrator.Status `json:"orchestrator"`
}

// New constructs a daemon with initialized dependencies. The history store
// may be nil when the journal is disabled; metricsHandler may be nil when
// no metrics endpoint is wanted.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, store *history.Store, notifier notifications.Service, metricsHandler http.Handler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || orch == nil {
		return nil, errors.New("daemon requires config and orchestrator")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		orch:     orch,
		store:    store,
		notifier: notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.hotplug = newHotplugMonitor(logger)
	if metricsHandler != nil && strings.TrimSpace(cfg.Daemon.MetricsBind) != "" {
		d.metrics = newMetricsServer(cfg.Daemon.MetricsBind, metricsHandler, logger)
	}
	return d, nil
}

// Start acquires the daemon lock and launches the orchestrator and its
// side services.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another periphd instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if d.metrics != nil {
		d.metrics.Start()
	}
	if err := d.hotplug.Start(d.ctx); err != nil {
		d.logger.Warn("hotplug monitor unavailable", logging.Error(err))
	}
	d.orch.Start(d.ctx)

	d.running.Store(true)
	d.journal(d.ctx, history.KindDaemonStart, "", strings.Join(d.orch.Status().Peripherals, ","))
	if err := d.notifier.NotifyDaemonStarted(d.ctx, d.orch.Status().Peripherals); err != nil {
		d.logger.Debug("start notification failed", logging.Error(err))
	}
	d.logger.Info("periphd daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops the orchestrator and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.journal(context.Background(), history.KindDaemonStop, "", "")
	d.orch.Stop()
	d.hotplug.Stop()
	if d.metrics != nil {
		d.metrics.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("periphd daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports current daemon state.
func (d *Daemon) Status() Status {
	st := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockPath:     d.lockPath,
		SocketPath:   d.cfg.SocketPath(),
		Orchestrator: d.orch.Status(),
	}
	if d.store != nil {
		st.HistoryPath = d.cfg.HistoryPath()
		st.SessionID = d.store.SessionID()
	}
	return st
}

// UpdateConfig applies a live configuration update and journals the
// outcome.
func (d *Daemon) UpdateConfig(ctx context.Context, partial config.Partial) error {
	err := d.orch.UpdateConfig(partial)
	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	d.journal(ctx, history.KindConfigUpdate, "", detail)
	return err
}

// Events returns recent journal entries, optionally filtered by kind.
func (d *Daemon) Events(ctx context.Context, kind string, limit int) ([]history.Event, error) {
	if d.store == nil {
		return nil, errors.New("event journal is disabled")
	}
	return d.store.Recent(ctx, kind, limit)
}

// TestNotification triggers a test notification with the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := d.notifier.TestNotification(sendCtx); err != nil {
		return false, err.Error(), err
	}
	return true, "test notification sent", nil
}

// HandleServiceTransition journals and notifies a service health change.
// Wire it into the health prober before the daemon starts.
func (d *Daemon) HandleServiceTransition(label string, healthy bool) {
	detail := "unhealthy"
	if healthy {
		detail = "healthy"
	}
	d.journal(context.Background(), history.KindServiceHealth, label, detail)
	if err := d.notifier.NotifyServiceHealth(context.Background(), label, healthy); err != nil {
		d.logger.Debug("health notification failed", logging.Error(err))
	}
}

// HandleFanState journals a fan on/off switch.
func (d *Daemon) HandleFanState(running bool) {
	detail := "off"
	if running {
		detail = "on"
	}
	d.journal(context.Background(), history.KindFanState, "", detail)
}

// HandlePowerInput journals an external power transition.
func (d *Daemon) HandlePowerInput(plugged bool) {
	detail := "unplugged"
	if plugged {
		detail = "plugged"
	}
	d.journal(context.Background(), history.KindPowerInput, "", detail)
}

// HandleShutdown journals and notifies a shutdown trigger. Called once per
// reason by the power monitor.
func (d *Daemon) HandleShutdown(reason string) {
	d.journal(context.Background(), history.KindShutdown, "", reason)
	if err := d.notifier.NotifyShutdown(context.Background(), reason); err != nil {
		d.logger.Debug("shutdown notification failed", logging.Error(err))
	}
}

func (d *Daemon) journal(ctx context.Context, kind, subject, detail string) {
	if d.store == nil {
		return
	}
	if err := d.store.Append(ctx, kind, subject, detail); err != nil {
		d.logger.Debug("failed to journal event",
			logging.String(logging.FieldEventType, kind),
			logging.Error(err))
	}
}
