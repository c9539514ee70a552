package config

const (
	defaultLogDir              = "~/.local/share/periphd/logs"
	defaultMetricsBind         = "127.0.0.1:9187"
	defaultInterval            = 1.0
	defaultDiskPath            = "/"
	defaultTemperatureUnit     = "C"
	defaultRotation            = 0
	defaultBrightness          = 100
	defaultQuietMinute         = 3
	defaultPageSwitchSeconds   = 12.0
	defaultServiceCheckSeconds = 12.0
	defaultIPRotateSeconds     = 3.0
	defaultRGBLEDCount         = 4
	defaultRGBColor            = "#ff00ff"
	defaultRGBBrightness       = 100
	defaultRGBStyle            = "rainbow"
	defaultRGBSpeed            = 0
	defaultRGBSPIPort          = "SPI0.0"
	defaultFanGPIOPin          = "GPIO6"
	defaultFanOnTempC          = 60.0
	defaultFanOffTempC         = 50.0
	defaultPowerAddress        = 0x5A
	defaultNotifyTimeout       = 10
	defaultHistoryMaxEvents    = 10000
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			LogDir:      defaultLogDir,
			MetricsBind: defaultMetricsBind,
			Peripherals: []string{"display", "fan"},
			Interval:    defaultInterval,
			DiskPath:    defaultDiskPath,
		},
		Display: Display{
			Enabled:             true,
			Rotation:            defaultRotation,
			Brightness:          defaultBrightness,
			TemperatureUnit:     defaultTemperatureUnit,
			QuietMinute:         defaultQuietMinute,
			PageSwitchSeconds:   defaultPageSwitchSeconds,
			ServiceCheckSeconds: defaultServiceCheckSeconds,
			IPRotateSeconds:     defaultIPRotateSeconds,
		},
		RGB: RGB{
			LEDCount:   defaultRGBLEDCount,
			Enabled:    true,
			Color:      defaultRGBColor,
			Brightness: defaultRGBBrightness,
			Style:      defaultRGBStyle,
			Speed:      defaultRGBSpeed,
			SPIPort:    defaultRGBSPIPort,
		},
		Fan: Fan{
			GPIOPin:  defaultFanGPIOPin,
			OnTempC:  defaultFanOnTempC,
			OffTempC: defaultFanOffTempC,
		},
		Power: Power{
			Address: defaultPowerAddress,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Shutdown:       true,
			Health:         true,
		},
		History: History{
			Enabled:   true,
			MaxEvents: defaultHistoryMaxEvents,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
