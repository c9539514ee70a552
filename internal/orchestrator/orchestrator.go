package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"periphd/internal/display"
	"periphd/internal/health"
	"periphd/internal/hw/fan"
	"periphd/internal/hw/rgb"
	"periphd/internal/logging"
	"periphd/internal/metrics"
	"periphd/internal/periph"
	"periphd/internal/power"
	"periphd/internal/sysinfo"
	"periphd/internal/tick"
)

// Components holds the peripheral sub-components built for the active
// capability set. A nil field means the capability is inactive, either
// unconfigured or absent at probe time.
type Components struct {
	Pager    *display.Pager
	Fan      *fan.Controller
	Lighting *rgb.Animator
	Power    *power.Monitor
	Prober   *health.Prober

	// Degraded marks a failed host-driver bring-up: peripherals were
	// requested but none could be probed. Individual absent peripherals
	// do not set it.
	Degraded bool
}

// Orchestrator drives every active peripheral from one periodic tick. A
// step failure is logged and skipped; the remaining steps of the tick
// still run.
type Orchestrator struct {
	mu      sync.Mutex
	running bool
	ready   bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	ticker  *time.Ticker

	interval   time.Duration
	caps       periph.Set
	components Components
	source     sysinfo.Source
	logger     *slog.Logger
	recorder   metrics.Recorder

	// Set when no pager runs but services are tracked, so health keeps
	// its probe cadence without a panel.
	probeGate *tick.Gate

	startedAt time.Time
}

// probeInterval matches the pager's default service-check cadence.
const probeInterval = 12 * time.Second

func New(caps periph.Set, interval time.Duration, components Components, source sysinfo.Source, logger *slog.Logger, recorder metrics.Recorder) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		interval:   interval,
		caps:       caps,
		components: components,
		ready:      !components.Degraded,
		source:     source,
		logger:     logger.With(logging.String(logging.FieldComponent, "orchestrator")),
		recorder:   metrics.OrNoop(recorder),
	}
	if components.Pager == nil && components.Prober != nil {
		o.probeGate = tick.NewGate(probeInterval)
	}
	return o
}

// Start launches the tick loop and the lighting animation. Starting a
// running orchestrator logs a warning and does nothing.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		o.logger.Warn("orchestrator already running")
		return
	}
	o.running = true
	o.startedAt = time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.ticker = time.NewTicker(o.interval)

	if o.components.Lighting != nil {
		o.components.Lighting.Start(runCtx)
	}

	o.wg.Add(1)
	go o.run(runCtx)
	o.logger.Info("orchestrator started",
		logging.Duration("interval", o.interval),
		slog.Any("peripherals", o.caps.Strings()))
}

func (o *Orchestrator) run(ctx context.Context) {
	defer o.wg.Done()
	defer o.ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.ticker.C:
			o.tick(ctx)
		}
	}
}

// tick runs the peripheral steps in a fixed order: display, fan, power.
// The power step goes last so the panel shows current state up to the
// moment a shutdown fires.
func (o *Orchestrator) tick(ctx context.Context) {
	started := time.Now()
	if o.components.Pager != nil {
		o.step(ctx, "display", o.components.Pager.Tick)
	} else if o.probeGate != nil && o.probeGate.Due(time.Now()) {
		o.components.Prober.Refresh(ctx)
	}
	if o.components.Fan != nil {
		o.step(ctx, "fan", o.fanStep)
	}
	if o.components.Power != nil {
		o.step(ctx, "power", o.components.Power.Tick)
	}
	o.recorder.TickCompleted(time.Since(started))
}

func (o *Orchestrator) step(ctx context.Context, name string, fn func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			o.recorder.StepFailed(name)
			o.logger.Error("peripheral step panicked",
				logging.String(logging.FieldCapability, name),
				slog.Any("panic", r))
		}
	}()
	if err := fn(ctx); err != nil {
		o.recorder.StepFailed(name)
		o.logger.Warn("peripheral step failed",
			logging.String(logging.FieldCapability, name),
			logging.Error(err))
	}
}

func (o *Orchestrator) fanStep(ctx context.Context) error {
	snap, err := o.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read cpu temperature: %w", err)
	}
	return o.components.Fan.Apply(snap.CPUTempC)
}

// Stop halts the tick loop, waits for an in-flight tick, then releases
// the peripherals: panel first, lighting next, fan last.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	cancel()
	o.wg.Wait()

	if o.components.Pager != nil {
		if err := o.components.Pager.Close(); err != nil {
			o.logger.Warn("failed to release panel", logging.Error(err))
		}
	}
	if o.components.Lighting != nil {
		if err := o.components.Lighting.Stop(); err != nil {
			o.logger.Warn("failed to release lighting", logging.Error(err))
		}
	}
	if o.components.Fan != nil {
		if err := o.components.Fan.Off(); err != nil {
			o.logger.Warn("failed to release fan", logging.Error(err))
		}
	}
	o.logger.Info("orchestrator stopped")
}

// IsRunning reports whether the tick loop is active.
func (o *Orchestrator) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// IsReady reports whether peripheral bring-up completed. A peripheral
// that was absent at probe time does not clear readiness; only a failed
// host-driver bring-up does.
func (o *Orchestrator) IsReady() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ready
}

// Status is a point-in-time view of the orchestrator for the control
// surface.
type Status struct {
	Running     bool            `json:"running"`
	Ready       bool            `json:"ready"`
	UptimeSec   int64           `json:"uptime_sec"`
	Peripherals []string        `json:"peripherals"`
	Page        string          `json:"page,omitempty"`
	FanRunning  bool            `json:"fan_running"`
	Services    []health.Status `json:"services,omitempty"`
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	running := o.running
	ready := o.ready
	startedAt := o.startedAt
	o.mu.Unlock()

	st := Status{
		Running:     running,
		Ready:       ready,
		Peripherals: o.caps.Strings(),
	}
	if running {
		st.UptimeSec = int64(time.Since(startedAt).Seconds())
	}
	if o.components.Pager != nil {
		st.Page = o.components.Pager.CurrentPage()
	}
	if o.components.Fan != nil {
		st.FanRunning = o.components.Fan.IsRunning()
	}
	if o.components.Prober != nil {
		st.Services = o.components.Prober.Statuses()
	}
	return st
}
