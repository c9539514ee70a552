package main

import (
	"log/slog"
	"time"

	"periph.io/x/host/v3"

	"periphd/internal/config"
	"periphd/internal/daemon"
	"periphd/internal/display"
	"periphd/internal/health"
	"periphd/internal/hw/fan"
	"periphd/internal/hw/oled"
	"periphd/internal/hw/rgb"
	"periphd/internal/hw/spc"
	"periphd/internal/logging"
	"periphd/internal/metrics"
	"periphd/internal/orchestrator"
	"periphd/internal/periph"
	"periphd/internal/power"
	"periphd/internal/sysinfo"
)

// buildComponents probes the configured peripherals and assembles the
// sub-components for the ones that answered. A peripheral that fails its
// probe is logged and left inactive; the daemon runs with the rest.
func buildComponents(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (orchestrator.Components, time.Duration, periph.Set) {
	interval := time.Duration(cfg.Daemon.Interval * float64(time.Second))

	caps, err := periph.ParseSet(cfg.Daemon.Peripherals)
	if err != nil {
		logger.Warn("ignoring unknown peripheral tags", logging.Error(err))
		caps = periph.NewSet()
		for _, tag := range cfg.Daemon.Peripherals {
			if c, ok := periph.ParseCapability(tag); ok {
				caps[c] = struct{}{}
			}
		}
	}

	var components orchestrator.Components
	// Service probes need no hardware; they run even on a headless box
	// with every peripheral tag absent.
	components.Prober = buildProber(cfg, logger, recorder)

	if len(caps) == 0 {
		return components, interval, caps
	}

	if _, err := host.Init(); err != nil {
		logger.Error("initialize peripheral host drivers", logging.Error(err))
		components.Degraded = true
		return components, interval, caps
	}

	if caps.Has(periph.CapDisplay) {
		components.Pager = buildPager(cfg, components.Prober, logger, recorder)
	}
	if caps.Has(periph.CapRGB) {
		components.Lighting = buildLighting(cfg, logger)
	}
	if caps.Has(periph.CapFan) {
		components.Fan = buildFan(cfg, logger)
	}
	if caps.Has(periph.CapPowerSupervisor) {
		components.Power = buildPower(cfg, logger, recorder)
	}
	return components, interval, caps
}

func newSource(cfg *config.Config) sysinfo.Source {
	return sysinfo.NewSystemSource(cfg.Daemon.DiskPath)
}

func buildProber(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) *health.Prober {
	if len(cfg.Services) == 0 {
		return nil
	}

	var containers health.ContainerClient
	var initClient health.InitClient
	for _, svc := range cfg.Services {
		if svc.Container != "" && containers == nil {
			client, err := health.NewDockerClient()
			if err != nil {
				logger.Warn("container probes unavailable", logging.Error(err))
				continue
			}
			containers = client
		}
		if svc.Unit != "" && initClient == nil {
			initClient = health.NewSystemdClient()
		}
	}
	return health.NewProber(cfg.Services, containers, initClient, logger, recorder)
}

func buildPager(cfg *config.Config, prober *health.Prober, logger *slog.Logger, recorder metrics.Recorder) *display.Pager {
	var driver display.Driver
	device, err := oled.Open(cfg.Display.I2CBus, cfg.Display.Rotation)
	if err != nil {
		// Keep the pager alive without a panel: it still refreshes
		// service health on its cadence.
		logger.Warn("display peripheral absent",
			logging.String(logging.FieldCapability, string(periph.CapDisplay)),
			logging.Error(err))
	} else {
		if err := device.SetContrastPercent(cfg.Display.Brightness); err != nil {
			logger.Debug("failed to set panel contrast", logging.Error(err))
		}
		driver = device
	}

	pager := display.NewPager(cfg.Display, driver, newSource(cfg), prober, logger, recorder)
	pager.SetEnabled(cfg.Display.Enabled)
	return pager
}

func buildLighting(cfg *config.Config, logger *slog.Logger) *rgb.Animator {
	strip, err := rgb.OpenWS2812(cfg.RGB.SPIPort)
	if err != nil {
		logger.Warn("rgb peripheral absent",
			logging.String(logging.FieldCapability, string(periph.CapRGB)),
			logging.Error(err))
		return nil
	}
	animator, err := rgb.NewAnimator(strip, cfg.RGB, logger)
	if err != nil {
		logger.Warn("rgb configuration rejected", logging.Error(err))
		strip.Close()
		return nil
	}
	return animator
}

func buildFan(cfg *config.Config, logger *slog.Logger) *fan.Controller {
	pin, err := fan.OpenPin(cfg.Fan.GPIOPin)
	if err != nil {
		logger.Warn("fan peripheral absent",
			logging.String(logging.FieldCapability, string(periph.CapFan)),
			logging.Error(err))
		return nil
	}
	return fan.NewController(pin, cfg.Fan, logger)
}

func buildPower(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) *power.Monitor {
	supervisor, err := spc.Open(cfg.Power.I2CBus, uint16(cfg.Power.Address))
	if err != nil {
		logger.Warn("power supervisor absent",
			logging.String(logging.FieldCapability, string(periph.CapPowerSupervisor)),
			logging.Error(err))
		return nil
	}
	return power.NewMonitor(supervisor, power.SystemShutdown, logger, recorder)
}

// wireHooks routes component transitions into the journal and notifier.
// Must run before the daemon starts ticking.
func wireHooks(d *daemon.Daemon, components orchestrator.Components) {
	if components.Prober != nil {
		components.Prober.SetOnTransition(d.HandleServiceTransition)
	}
	if components.Fan != nil {
		components.Fan.SetOnStateChange(d.HandleFanState)
	}
	if components.Power != nil {
		components.Power.SetOnInputChange(d.HandlePowerInput)
		components.Power.SetOnShutdown(d.HandleShutdown)
	}
}
