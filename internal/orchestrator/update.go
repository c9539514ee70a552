package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"periphd/internal/config"
	"periphd/internal/hw/rgb"
	"periphd/internal/logging"
)

// UpdateConfig applies a live configuration update. Each present field is
// validated and applied independently; the returned error joins every
// field that failed, and every field that validated was applied.
func (o *Orchestrator) UpdateConfig(partial config.Partial) error {
	if partial.Empty() {
		return errors.New("configuration update carries no fields")
	}

	var errs []error
	apply := func(field string, err error) {
		o.recorder.ConfigUpdated(field, err == nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
			return
		}
		o.logger.Info("configuration updated", logging.String("field", field))
	}

	if partial.TemperatureUnit != nil {
		apply("temperature_unit", o.setTemperatureUnit(*partial.TemperatureUnit))
	}
	if partial.OLEDRotation != nil {
		apply("oled_rotation", o.setRotation(*partial.OLEDRotation))
	}
	if partial.OLEDEnable != nil {
		apply("oled_enable", o.setDisplayEnabled(*partial.OLEDEnable))
	}
	if partial.OLEDBrightness != nil {
		apply("oled_brightness", o.setBrightness(*partial.OLEDBrightness))
	}
	if partial.Interval != nil {
		apply("interval", o.setInterval(*partial.Interval))
	}
	if partial.RGB != nil {
		o.applyRGB(*partial.RGB, apply)
	}
	if partial.Fan != nil {
		o.applyFan(*partial.Fan, apply)
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) setTemperatureUnit(unit string) error {
	if err := config.ValidateTemperatureUnit(unit); err != nil {
		return err
	}
	if o.components.Pager == nil {
		return errors.New("display peripheral is not active")
	}
	o.components.Pager.SetTemperatureUnit(unit)
	return nil
}

func (o *Orchestrator) setRotation(degrees int) error {
	if err := config.ValidateRotation(degrees); err != nil {
		return err
	}
	if o.components.Pager == nil {
		return errors.New("display peripheral is not active")
	}
	return o.components.Pager.SetRotation(degrees)
}

func (o *Orchestrator) setDisplayEnabled(enabled bool) error {
	if o.components.Pager == nil {
		return errors.New("display peripheral is not active")
	}
	o.components.Pager.SetEnabled(enabled)
	return nil
}

func (o *Orchestrator) setBrightness(percent int) error {
	if err := config.ValidateBrightness(percent); err != nil {
		return err
	}
	if o.components.Pager == nil {
		return errors.New("display peripheral is not active")
	}
	return o.components.Pager.SetBrightness(percent)
}

func (o *Orchestrator) setInterval(seconds float64) error {
	if err := config.ValidateInterval(seconds); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.interval = time.Duration(seconds * float64(time.Second))
	if o.ticker != nil && o.running {
		o.ticker.Reset(o.interval)
	}
	return nil
}

func (o *Orchestrator) applyRGB(partial config.RGBPartial, apply func(string, error)) {
	lighting := o.components.Lighting
	if lighting == nil {
		apply("rgb", errors.New("rgb peripheral is not active"))
		return
	}
	if partial.Enabled != nil {
		lighting.SetEnabled(*partial.Enabled)
		apply("rgb.enabled", nil)
	}
	if partial.Color != nil {
		apply("rgb.color", o.setRGBColor(lighting, *partial.Color))
	}
	if partial.Brightness != nil {
		err := config.ValidateBrightness(*partial.Brightness)
		if err == nil {
			lighting.SetBrightness(*partial.Brightness)
		}
		apply("rgb.brightness", err)
	}
	if partial.Style != nil {
		err := config.ValidateRGBStyle(*partial.Style)
		if err == nil {
			lighting.SetStyle(*partial.Style)
		}
		apply("rgb.style", err)
	}
	if partial.Speed != nil {
		lighting.SetSpeed(*partial.Speed)
		apply("rgb.speed", nil)
	}
}

func (o *Orchestrator) setRGBColor(lighting *rgb.Animator, value string) error {
	color, err := rgb.ParseColor(value)
	if err != nil {
		return err
	}
	lighting.SetColor(color)
	return nil
}

func (o *Orchestrator) applyFan(partial config.FanPartial, apply func(string, error)) {
	if o.components.Fan == nil {
		apply("fan", errors.New("fan peripheral is not active"))
		return
	}
	if partial.OnTempC == nil && partial.OffTempC == nil {
		return
	}
	if partial.OnTempC == nil || partial.OffTempC == nil {
		apply("fan", errors.New("fan thresholds must be updated together"))
		return
	}
	apply("fan.thresholds", o.components.Fan.SetThresholds(*partial.OnTempC, *partial.OffTempC))
}
