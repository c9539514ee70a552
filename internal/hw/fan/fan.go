package fan

import (
	"fmt"
	"log/slog"
	"sync"

	"periphd/internal/config"
	"periphd/internal/logging"
)

// Pin is the single GPIO line the fan hangs off.
type Pin interface {
	Out(high bool) error
}

// Controller switches the fan with hysteresis: on at or above the on
// threshold, off at or below the off threshold, unchanged in between.
type Controller struct {
	mu sync.Mutex

	pin      Pin
	onTempC  float64
	offTempC float64
	running  bool
	logger   *slog.Logger

	onStateChange func(running bool)
}

func NewController(pin Pin, cfg config.Fan, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{
		pin:      pin,
		onTempC:  cfg.OnTempC,
		offTempC: cfg.OffTempC,
		logger:   logger.With(logging.String(logging.FieldComponent, "fan")),
	}
}

// SetOnStateChange installs a hook fired after every fan on/off switch.
// Must be set before the tick loop starts.
func (c *Controller) SetOnStateChange(fn func(running bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

// Apply drives the fan for the given CPU temperature.
func (c *Controller) Apply(tempC float64) error {
	c.mu.Lock()
	changed := false

	switch {
	case !c.running && tempC >= c.onTempC:
		if err := c.pin.Out(true); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("switch fan on: %w", err)
		}
		c.running = true
		changed = true
		c.logger.Info("fan switched on", logging.Float64("temp_c", tempC))
	case c.running && tempC <= c.offTempC:
		if err := c.pin.Out(false); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("switch fan off: %w", err)
		}
		c.running = false
		changed = true
		c.logger.Info("fan switched off", logging.Float64("temp_c", tempC))
	}
	running := c.running
	hook := c.onStateChange
	c.mu.Unlock()

	if changed && hook != nil {
		hook(running)
	}
	return nil
}

// SetThresholds replaces the hysteresis band. The on threshold must stay
// above the off threshold.
func (c *Controller) SetThresholds(onTempC, offTempC float64) error {
	if onTempC <= offTempC {
		return fmt.Errorf("fan on threshold %.1f must exceed off threshold %.1f", onTempC, offTempC)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTempC = onTempC
	c.offTempC = offTempC
	return nil
}

// IsRunning reports the last commanded fan state.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Off forces the fan off, for daemon shutdown.
func (c *Controller) Off() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.pin.Out(false); err != nil {
		return fmt.Errorf("switch fan off: %w", err)
	}
	c.running = false
	return nil
}
