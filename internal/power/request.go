package power

// Request is the shutdown request code latched by the power supervisor.
// The codes match the supervisor firmware register values.
type Request int

const (
	RequestNone     Request = 0
	RequestButton   Request = 1
	RequestLowPower Request = 2
)

// Reason names the request for logs, metrics, and the event journal.
func (r Request) Reason() string {
	switch r {
	case RequestButton:
		return "button"
	case RequestLowPower:
		return "low-power"
	default:
		return "none"
	}
}

// Supervisor features gate the optional checks the monitor runs.
const (
	FeatureExternalInput = "external-input"
	FeatureBattery       = "battery"
)

// Supervisor abstracts the power supervisor MCU. Implementations read the
// device registers over I2C; tests supply fixed values.
type Supervisor interface {
	// IsReady reports whether the supervisor was detected on the bus.
	IsReady() bool

	// HasFeature reports whether the board exposes the named feature.
	HasFeature(feature string) bool

	// ReadShutdownRequest reads the latched shutdown request code.
	ReadShutdownRequest() (Request, error)

	// ReadIsPluggedIn reports whether external power is present.
	ReadIsPluggedIn() (bool, error)

	// ReadBatteryPercent reads the current battery charge.
	ReadBatteryPercent() (float64, error)

	// ReadShutdownBatteryPercent reads the configured charge floor below
	// which the board must shut down when unplugged.
	ReadShutdownBatteryPercent() (int, error)
}
