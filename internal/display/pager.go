package display

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"periphd/internal/config"
	"periphd/internal/health"
	"periphd/internal/logging"
	"periphd/internal/metrics"
	"periphd/internal/sysinfo"
	"periphd/internal/tick"
)

// PageKind identifies one screen in the rotation.
type PageKind int

const (
	PageStats PageKind = iota
	PageServices
)

func (k PageKind) String() string {
	switch k {
	case PageStats:
		return "stats"
	case PageServices:
		return "services"
	default:
		return "unknown"
	}
}

const disconnectedLabel = "DISCONNECTED"

// Pager drives the panel through its tick phases: blank while the display
// is switched off, blank during the quiet window when every service is
// healthy, and otherwise rotate through the configured pages. The current
// page is rendered before the rotation gate is consulted, so a page stays
// on screen for a full switch interval.
type Pager struct {
	mu sync.Mutex

	driver   Driver
	source   sysinfo.Source
	prober   *health.Prober
	logger   *slog.Logger
	recorder metrics.Recorder

	tempUnit    string
	quietMinute int
	enabled     bool

	pageGate    *tick.Gate
	recheckGate *tick.Gate
	ipGate      *tick.Gate
	primed      bool

	pages     []PageKind
	renderers map[PageKind]func(ctx context.Context, now time.Time, refreshed bool) error
	pageIndex int
	drawn     bool

	ipIndex   int
	currentIP string

	blanked bool

	now func() time.Time
}

func NewPager(cfg config.Display, driver Driver, source sysinfo.Source, prober *health.Prober, logger *slog.Logger, recorder metrics.Recorder) *Pager {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pager{
		driver:      driver,
		source:      source,
		prober:      prober,
		logger:      logger.With(logging.String(logging.FieldComponent, "display")),
		recorder:    metrics.OrNoop(recorder),
		tempUnit:    cfg.TemperatureUnit,
		quietMinute: cfg.QuietMinute,
		enabled:     true,
		pageGate:    tick.NewGate(time.Duration(cfg.PageSwitchSeconds * float64(time.Second))),
		recheckGate: tick.NewGate(time.Duration(cfg.ServiceCheckSeconds * float64(time.Second))),
		ipGate:      tick.NewGate(time.Duration(cfg.IPRotateSeconds * float64(time.Second))),
		currentIP:   disconnectedLabel,
		now:         time.Now,
	}
	p.pages = []PageKind{PageStats}
	if prober != nil && prober.Count() > 0 {
		p.pages = append(p.pages, PageServices)
	}
	p.renderers = map[PageKind]func(context.Context, time.Time, bool) error{
		PageStats:    p.renderStats,
		PageServices: p.renderServices,
	}
	return p
}

// Tick advances the pager by one cycle. Probes are refreshed on their own
// cadence regardless of what ends up on screen, so the quiet-window
// decision always sees reasonably fresh state.
func (p *Pager) Tick(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	refreshed := false
	if p.prober != nil && p.recheckGate.Due(now) {
		p.prober.Refresh(ctx)
		refreshed = true
	}

	// Health stays fresh above even when the panel is absent or switched
	// off, so nothing stale greets the panel when it comes back.
	if p.driver == nil || !p.driver.IsReady() {
		return nil
	}

	if !p.primed {
		p.pageGate.Due(now)
		p.primed = true
	}

	if !p.enabled {
		p.blank()
		return nil
	}
	if p.inQuietWindow(now) && (p.prober == nil || p.prober.AllHealthy()) {
		p.blank()
		return nil
	}
	p.blanked = false

	kind := p.pages[p.pageIndex]
	if err := p.renderers[kind](ctx, now, refreshed); err != nil {
		return err
	}
	p.recorder.PageRendered(kind.String())

	if p.pageGate.Due(now) {
		p.pageIndex = (p.pageIndex + 1) % len(p.pages)
		p.drawn = false
	}
	return nil
}

func (p *Pager) inQuietWindow(now time.Time) bool {
	return now.Minute() >= p.quietMinute
}

func (p *Pager) blank() {
	if p.blanked {
		return
	}
	p.driver.Clear()
	if err := p.driver.Display(); err != nil {
		p.logger.Debug("failed to blank panel", logging.Error(err))
		return
	}
	p.blanked = true
}

// CurrentPage returns the kind of the page currently in rotation.
func (p *Pager) CurrentPage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages[p.pageIndex].String()
}

// SetTemperatureUnit accepts "C" or "F".
func (p *Pager) SetTemperatureUnit(unit string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tempUnit = unit
}

// SetRotation flips the panel by 0 or 180 degrees.
func (p *Pager) SetRotation(degrees int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.driver == nil || !p.driver.IsReady() {
		return nil
	}
	return p.driver.SetRotation(degrees)
}

// SetEnabled switches the panel on or off. While off the pager keeps
// refreshing probes but leaves the panel blank.
func (p *Pager) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// SetBrightness maps 0-100 onto the panel contrast.
func (p *Pager) SetBrightness(percent int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.driver == nil || !p.driver.IsReady() {
		return nil
	}
	return p.driver.SetContrastPercent(percent)
}

// Close blanks and sleeps the panel.
func (p *Pager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.driver == nil || !p.driver.IsReady() {
		return nil
	}
	p.driver.Clear()
	if err := p.driver.Display(); err != nil {
		return err
	}
	return p.driver.Off()
}
