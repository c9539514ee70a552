package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateRGB(); err != nil {
		return err
	}
	if err := c.validateFan(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if err := ValidateInterval(c.Daemon.Interval); err != nil {
		return fmt.Errorf("daemon.interval: %w", err)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if err := ValidateTemperatureUnit(c.Display.TemperatureUnit); err != nil {
		return fmt.Errorf("display.temperature_unit: %w", err)
	}
	if err := ValidateRotation(c.Display.Rotation); err != nil {
		return fmt.Errorf("display.rotation: %w", err)
	}
	if err := ValidateBrightness(c.Display.Brightness); err != nil {
		return fmt.Errorf("display.brightness: %w", err)
	}
	if c.Display.QuietMinute < 0 || c.Display.QuietMinute > 59 {
		return errors.New("display.quiet_minute must be between 0 and 59")
	}
	return nil
}

func (c *Config) validateRGB() error {
	if err := ValidateRGBStyle(c.RGB.Style); err != nil {
		return fmt.Errorf("rgb.style: %w", err)
	}
	if err := ValidateRGBColor(c.RGB.Color); err != nil {
		return fmt.Errorf("rgb.color: %w", err)
	}
	if err := ValidateBrightness(c.RGB.Brightness); err != nil {
		return fmt.Errorf("rgb.brightness: %w", err)
	}
	return nil
}

func (c *Config) validateFan() error {
	if c.Fan.OnTempC <= c.Fan.OffTempC {
		return errors.New("fan.on_temp_c must be above fan.off_temp_c")
	}
	return nil
}

func (c *Config) validateServices() error {
	seen := make(map[string]struct{}, len(c.Services))
	for i, svc := range c.Services {
		if svc.Label == "" {
			return fmt.Errorf("services[%d]: label is required", i)
		}
		if _, dup := seen[svc.Label]; dup {
			return fmt.Errorf("services[%d]: duplicate label %q", i, svc.Label)
		}
		seen[svc.Label] = struct{}{}
		hasContainer := svc.Container != ""
		hasUnit := svc.Unit != ""
		if hasContainer == hasUnit {
			return fmt.Errorf("services[%d] %q: exactly one of container or unit must be set", i, svc.Label)
		}
	}
	return nil
}
