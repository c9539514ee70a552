package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Daemon contains loop timing, paths, and peripheral activation.
type Daemon struct {
	LogDir      string   `toml:"log_dir"`
	MetricsBind string   `toml:"metrics_bind"`
	Peripherals []string `toml:"peripherals"`
	Interval    float64  `toml:"interval"`
	DiskPath    string   `toml:"disk_path"`
}

// Display contains the OLED pager settings.
type Display struct {
	Enabled             bool    `toml:"enabled"`
	Rotation            int     `toml:"rotation"`
	Brightness          int     `toml:"brightness"`
	TemperatureUnit     string  `toml:"temperature_unit"`
	QuietMinute         int     `toml:"quiet_minute"`
	PageSwitchSeconds   float64 `toml:"page_switch_seconds"`
	ServiceCheckSeconds float64 `toml:"service_check_seconds"`
	IPRotateSeconds     float64 `toml:"ip_rotate_seconds"`
	I2CBus              string  `toml:"i2c_bus"`
}

// RGB contains the WS2812 lighting settings, forwarded to the lighting
// sub-component when the rgb capability is active.
type RGB struct {
	LEDCount   int    `toml:"led_count"`
	Enabled    bool   `toml:"enabled"`
	Color      string `toml:"color"`
	Brightness int    `toml:"brightness"`
	Style      string `toml:"style"`
	Speed      int    `toml:"speed"`
	SPIPort    string `toml:"spi_port"`
}

// Fan contains the GPIO fan settings.
type Fan struct {
	GPIOPin  string  `toml:"gpio_pin"`
	OnTempC  float64 `toml:"on_temp_c"`
	OffTempC float64 `toml:"off_temp_c"`
}

// Power contains the power-supervisor bus settings.
type Power struct {
	I2CBus  string `toml:"i2c_bus"`
	Address int    `toml:"address"`
}

// Service describes one tracked service. Exactly one backend applies: a
// container name for the container-runtime check or a unit name for the
// init-system check.
type Service struct {
	Label     string `toml:"label"`
	Container string `toml:"container"`
	Unit      string `toml:"unit"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Shutdown       bool   `toml:"shutdown"`
	Health         bool   `toml:"health"`
}

// History contains the event journal settings.
type History struct {
	Enabled   bool `toml:"enabled"`
	MaxEvents int  `toml:"max_events"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for periphd.
//
// Configuration sections by subsystem:
//   - Daemon: tick interval, activated peripherals, paths, metrics bind
//   - Display: OLED pager timings, quiet hours, rotation, brightness
//   - RGB / Fan / Power: per-peripheral hardware settings
//   - Services: tracked services probed for health
//   - Notifications: ntfy push notification settings
//   - History: sqlite event journal
//   - Logging: log format and level
type Config struct {
	Daemon        Daemon        `toml:"daemon"`
	Display       Display       `toml:"display"`
	RGB           RGB           `toml:"rgb"`
	Fan           Fan           `toml:"fan"`
	Power         Power         `toml:"power"`
	Services      []Service     `toml:"services"`
	Notifications Notifications `toml:"notifications"`
	History       History       `toml:"history"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/periphd/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path; the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		candidate = strings.TrimSpace(os.Getenv("PERIPHD_CONFIG"))
	}
	if candidate == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		candidate = defaultPath
	}

	expanded, err := expandPath(candidate)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(expanded); err != nil {
		if os.IsNotExist(err) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config %s: %w", expanded, err)
	}
	return expanded, true, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return expanded, nil
}

// EnsureDirectories creates the directories the daemon writes to.
func (c *Config) EnsureDirectories() error {
	if c.Daemon.LogDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Daemon.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return nil
}

// SocketPath returns the unix socket path used for daemon control.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Daemon.LogDir, "periphd.sock")
}

// HistoryPath returns the sqlite event journal path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Daemon.LogDir, "history.db")
}

// LockPath returns the single-instance lock file path.
func (c *Config) LockPath() string {
	return filepath.Join(c.Daemon.LogDir, "periphd.lock")
}

// LogPath returns the daemon log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.Daemon.LogDir, "periphd.log")
}
