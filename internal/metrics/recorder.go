package metrics

import "time"

// Recorder receives counters and gauges from the scheduling core. Components
// hold a Recorder rather than prometheus types so tests and metric-less
// deployments can use Noop.
type Recorder interface {
	TickCompleted(d time.Duration)
	StepFailed(component string)
	ProbeResult(service string, healthy bool)
	PageRendered(page string)
	ShutdownTriggered(reason string)
	ConfigUpdated(field string, ok bool)
}

// Noop discards all observations.
type Noop struct{}

func (Noop) TickCompleted(time.Duration)  {}
func (Noop) StepFailed(string)            {}
func (Noop) ProbeResult(string, bool)     {}
func (Noop) PageRendered(string)          {}
func (Noop) ShutdownTriggered(string)     {}
func (Noop) ConfigUpdated(string, bool)   {}

// OrNoop returns r, or Noop when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return Noop{}
	}
	return r
}
