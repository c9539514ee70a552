package health

import (
	"context"
	"log/slog"
	"sync"

	"periphd/internal/config"
	"periphd/internal/logging"
	"periphd/internal/metrics"
)

// Prober sweeps the tracked services and caches the last known state of
// each. A probe failure marks the service unhealthy; it never aborts the
// sweep or escapes to the caller.
type Prober struct {
	mu         sync.RWMutex
	services   []*Service
	containers ContainerClient
	init       InitClient
	logger     *slog.Logger
	recorder   metrics.Recorder

	onTransition func(label string, healthy bool)
}

func NewProber(entries []config.Service, containers ContainerClient, init InitClient, logger *slog.Logger, recorder metrics.Recorder) *Prober {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Prober{
		services:   servicesFromConfig(entries),
		containers: containers,
		init:       init,
		logger:     logger.With(logging.String(logging.FieldComponent, "health")),
		recorder:   metrics.OrNoop(recorder),
	}
}

// SetOnTransition registers a hook invoked whenever a service changes
// state. Must be called before the first Refresh.
func (p *Prober) SetOnTransition(fn func(label string, healthy bool)) {
	p.onTransition = fn
}

// Refresh probes every tracked service once and records transitions.
// Probes can block for seconds on a slow backend, so they run without the
// lock; the cached state is swapped in one short critical section after
// the sweep.
func (p *Prober) Refresh(ctx context.Context) {
	results := make([]bool, len(p.services))
	for i, svc := range p.services {
		results[i] = p.probe(ctx, svc)
		p.recorder.ProbeResult(svc.Label, results[i])
	}

	var changed []Status
	p.mu.Lock()
	for i, svc := range p.services {
		if results[i] != svc.healthy {
			svc.healthy = results[i]
			changed = append(changed, Status{Label: svc.Label, Healthy: results[i]})
		}
	}
	p.mu.Unlock()

	for _, tr := range changed {
		p.logger.Info("service health changed",
			logging.String(logging.FieldService, tr.Label),
			logging.Bool("healthy", tr.Healthy))
		if p.onTransition != nil {
			p.onTransition(tr.Label, tr.Healthy)
		}
	}
}

func (p *Prober) probe(ctx context.Context, svc *Service) bool {
	var (
		healthy bool
		err     error
	)
	switch svc.Backend {
	case BackendContainer:
		if p.containers == nil {
			return false
		}
		healthy, err = p.containers.Healthy(ctx, svc.Name)
	case BackendInit:
		if p.init == nil {
			return false
		}
		healthy, err = p.init.Active(ctx, svc.Name)
	default:
		return false
	}
	if err != nil {
		p.logger.Debug("service probe failed",
			logging.String(logging.FieldService, svc.Label),
			logging.Error(err))
		return false
	}
	return healthy
}

// AllHealthy reports whether every tracked service was healthy at the last
// sweep. It is true when no services are tracked.
func (p *Prober) AllHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, svc := range p.services {
		if !svc.healthy {
			return false
		}
	}
	return true
}

// Statuses returns a snapshot of every tracked service.
func (p *Prober) Statuses() []Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	statuses := make([]Status, 0, len(p.services))
	for _, svc := range p.services {
		statuses = append(statuses, Status{
			Label:   svc.Label,
			Backend: svc.Backend,
			Name:    svc.Name,
			Healthy: svc.healthy,
		})
	}
	return statuses
}

// Count returns the number of tracked services.
func (p *Prober) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.services)
}
