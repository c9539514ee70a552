package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Normalize expands paths, trims strings, and fills empty optional values
// with defaults. It runs before Validate.
func (c *Config) Normalize() error {
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	c.normalizeDisplay()
	c.normalizeRGB()
	c.normalizePower()
	c.normalizeServices()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDaemon() error {
	var err error
	if strings.TrimSpace(c.Daemon.LogDir) == "" {
		c.Daemon.LogDir = defaultLogDir
	}
	if c.Daemon.LogDir, err = expandPath(c.Daemon.LogDir); err != nil {
		return fmt.Errorf("daemon.log_dir: %w", err)
	}
	c.Daemon.MetricsBind = strings.TrimSpace(c.Daemon.MetricsBind)
	if c.Daemon.Interval == 0 {
		c.Daemon.Interval = defaultInterval
	}
	if strings.TrimSpace(c.Daemon.DiskPath) == "" {
		c.Daemon.DiskPath = defaultDiskPath
	}
	peripherals := make([]string, 0, len(c.Daemon.Peripherals))
	for _, p := range c.Daemon.Peripherals {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			peripherals = append(peripherals, trimmed)
		}
	}
	c.Daemon.Peripherals = peripherals
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.TemperatureUnit = strings.ToUpper(strings.TrimSpace(c.Display.TemperatureUnit))
	if c.Display.TemperatureUnit == "" {
		c.Display.TemperatureUnit = defaultTemperatureUnit
	}
	if c.Display.PageSwitchSeconds <= 0 {
		c.Display.PageSwitchSeconds = defaultPageSwitchSeconds
	}
	if c.Display.ServiceCheckSeconds <= 0 {
		c.Display.ServiceCheckSeconds = defaultServiceCheckSeconds
	}
	if c.Display.IPRotateSeconds <= 0 {
		c.Display.IPRotateSeconds = defaultIPRotateSeconds
	}
	c.Display.I2CBus = strings.TrimSpace(c.Display.I2CBus)
}

func (c *Config) normalizeRGB() {
	c.RGB.Color = strings.ToLower(strings.TrimSpace(c.RGB.Color))
	if c.RGB.Color == "" {
		c.RGB.Color = defaultRGBColor
	}
	c.RGB.Style = strings.ToLower(strings.TrimSpace(c.RGB.Style))
	if c.RGB.Style == "" {
		c.RGB.Style = defaultRGBStyle
	}
	if c.RGB.LEDCount <= 0 {
		c.RGB.LEDCount = defaultRGBLEDCount
	}
	if strings.TrimSpace(c.RGB.SPIPort) == "" {
		c.RGB.SPIPort = defaultRGBSPIPort
	}
}

func (c *Config) normalizePower() {
	c.Power.I2CBus = strings.TrimSpace(c.Power.I2CBus)
	if c.Power.Address == 0 {
		c.Power.Address = defaultPowerAddress
	}
}

func (c *Config) normalizeServices() {
	services := make([]Service, 0, len(c.Services))
	for _, svc := range c.Services {
		svc.Label = strings.TrimSpace(svc.Label)
		svc.Container = strings.TrimSpace(svc.Container)
		svc.Unit = strings.TrimSpace(svc.Unit)
		if svc.Label == "" && svc.Container == "" && svc.Unit == "" {
			continue
		}
		services = append(services, svc)
	}
	c.Services = services
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
