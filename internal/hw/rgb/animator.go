package rgb

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"periphd/internal/config"
	"periphd/internal/logging"
)

const frameInterval = 50 * time.Millisecond

// Animator runs the lighting animation on its own goroutine. Frames tick
// at a fixed rate; the speed setting scales how far the animation phase
// moves per frame.
type Animator struct {
	mu sync.Mutex

	strip  Strip
	count  int
	logger *slog.Logger

	enabled    bool
	color      Color
	brightness int
	style      string
	speed      int
	phase      float64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAnimator(strip Strip, cfg config.RGB, logger *slog.Logger) (*Animator, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	color, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	return &Animator{
		strip:      strip,
		count:      cfg.LEDCount,
		logger:     logger.With(logging.String(logging.FieldComponent, "lighting")),
		enabled:    cfg.Enabled,
		color:      color,
		brightness: cfg.Brightness,
		style:      strings.ToLower(cfg.Style),
		speed:      cfg.Speed,
	}, nil
}

// Start launches the animation loop. Calling Start on a running animator
// is a no-op.
func (a *Animator) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.logger.Warn("lighting already running")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	go a.run(runCtx)
}

func (a *Animator) run(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.renderFrame(); err != nil {
				a.logger.Debug("failed to render led frame", logging.Error(err))
			}
		}
	}
}

func (a *Animator) renderFrame() error {
	a.mu.Lock()
	colors := a.frame()
	a.phase += float64(a.speed)
	a.mu.Unlock()
	return a.strip.Render(colors)
}

// frame computes the colors for the current phase. Callers hold the lock.
func (a *Animator) frame() []Color {
	colors := make([]Color, a.count)
	if !a.enabled {
		return colors
	}
	level := float64(a.brightness) / 100
	switch a.style {
	case "breathe":
		level *= (1 - math.Cos(a.phase*math.Pi/180)) / 2
		for i := range colors {
			colors[i] = a.color.Scale(level)
		}
	case "rainbow":
		for i := range colors {
			hue := a.phase + float64(i)*360/float64(a.count)
			colors[i] = hueColor(hue).Scale(level)
		}
	default: // solid
		for i := range colors {
			colors[i] = a.color.Scale(level)
		}
	}
	return colors
}

// Stop halts the animation, blanks the strip, and closes the port.
func (a *Animator) Stop() error {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	a.wg.Wait()

	if err := a.strip.Render(make([]Color, a.count)); err != nil {
		a.strip.Close()
		return err
	}
	return a.strip.Close()
}

func (a *Animator) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

func (a *Animator) SetColor(color Color) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.color = color
}

func (a *Animator) SetBrightness(percent int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.brightness = percent
}

func (a *Animator) SetStyle(style string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.style = strings.ToLower(style)
	a.phase = 0
}

func (a *Animator) SetSpeed(speed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speed = speed
}
