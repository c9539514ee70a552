package power

import (
	"context"
	"log/slog"
	"sync"

	"periphd/internal/logging"
	"periphd/internal/metrics"
)

// ShutdownFunc performs the system shutdown. It must be idempotent; the
// monitor keeps invoking it on every qualifying tick until the system
// actually goes down.
type ShutdownFunc func(ctx context.Context, reason string) error

// Monitor watches the power supervisor each tick. A latched shutdown
// request or a battery drained below the configured floor while unplugged
// triggers the shutdown action. The decision is never un-made: once a
// reason qualifies, every following tick re-invokes the action.
type Monitor struct {
	mu sync.Mutex

	supervisor Supervisor
	logger     *slog.Logger
	recorder   metrics.Recorder
	shutdown   ShutdownFunc

	onInputChange func(plugged bool)
	onShutdown    func(reason string)

	plugged     *bool
	lastRequest Request
	announced   map[string]bool
}

func NewMonitor(supervisor Supervisor, shutdown ShutdownFunc, logger *slog.Logger, recorder metrics.Recorder) *Monitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Monitor{
		supervisor: supervisor,
		logger:     logger.With(logging.String(logging.FieldComponent, "power")),
		recorder:   metrics.OrNoop(recorder),
		shutdown:   shutdown,
		announced:  make(map[string]bool),
	}
}

// SetOnInputChange registers a hook invoked when external power appears or
// disappears. Must be called before the first Tick.
func (m *Monitor) SetOnInputChange(fn func(plugged bool)) {
	m.onInputChange = fn
}

// SetOnShutdown registers a hook invoked once per shutdown reason, before
// the shutdown action runs. Must be called before the first Tick.
func (m *Monitor) SetOnShutdown(fn func(reason string)) {
	m.onShutdown = fn
}

// Tick runs the external-input check and then the shutdown-request check.
func (m *Monitor) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.supervisor == nil || !m.supervisor.IsReady() {
		return nil
	}
	// The input/battery check only applies to boards that carry both
	// capabilities; external input alone has nothing to decide.
	if m.supervisor.HasFeature(FeatureExternalInput) && m.supervisor.HasFeature(FeatureBattery) {
		m.checkExternalInput(ctx)
	}
	m.checkShutdownRequest(ctx)
	return nil
}

func (m *Monitor) checkExternalInput(ctx context.Context) {
	plugged, err := m.supervisor.ReadIsPluggedIn()
	if err != nil {
		m.logger.Debug("failed to read external input state", logging.Error(err))
		return
	}
	if m.plugged == nil || *m.plugged != plugged {
		m.logger.Info("external power input changed", logging.Bool("plugged", plugged))
		m.plugged = &plugged
		if m.onInputChange != nil {
			m.onInputChange(plugged)
		}
	}
	if plugged {
		return
	}

	percent, err := m.supervisor.ReadBatteryPercent()
	if err != nil {
		m.logger.Debug("failed to read battery charge", logging.Error(err))
		return
	}
	floor, err := m.supervisor.ReadShutdownBatteryPercent()
	if err != nil {
		m.logger.Debug("failed to read battery shutdown floor", logging.Error(err))
		return
	}
	if percent < float64(floor) {
		m.trigger(ctx, RequestLowPower.Reason())
	}
}

func (m *Monitor) checkShutdownRequest(ctx context.Context) {
	request, err := m.supervisor.ReadShutdownRequest()
	if err != nil {
		m.logger.Debug("failed to read shutdown request", logging.Error(err))
		return
	}
	if request != m.lastRequest {
		m.logger.Debug("shutdown request changed",
			logging.String("from", m.lastRequest.Reason()),
			logging.String("to", request.Reason()))
		m.lastRequest = request
	}
	if request == RequestNone {
		return
	}
	m.trigger(ctx, request.Reason())
}

func (m *Monitor) trigger(ctx context.Context, reason string) {
	if !m.announced[reason] {
		m.announced[reason] = true
		m.logger.Warn("shutting down system", logging.String("reason", reason))
		m.recorder.ShutdownTriggered(reason)
		if m.onShutdown != nil {
			m.onShutdown(reason)
		}
	}
	if m.shutdown == nil {
		return
	}
	if err := m.shutdown(ctx, reason); err != nil {
		m.logger.Error("shutdown action failed", logging.Error(err))
	}
}
