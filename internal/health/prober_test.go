package health

import (
	"context"
	"errors"
	"testing"

	"periphd/internal/config"
)

type stubContainers struct {
	states map[string]bool
	errs   map[string]error
}

func (s *stubContainers) Healthy(_ context.Context, name string) (bool, error) {
	if err, ok := s.errs[name]; ok {
		return false, err
	}
	return s.states[name], nil
}

func (s *stubContainers) Close() error { return nil }

type stubInit struct {
	states map[string]bool
}

func (s *stubInit) Active(_ context.Context, unit string) (bool, error) {
	return s.states[unit], nil
}

func TestProberRefreshMixedBackends(t *testing.T) {
	entries := []config.Service{
		{Label: "API", Container: "api"},
		{Label: "DNS", Unit: "dnsmasq.service"},
	}
	containers := &stubContainers{states: map[string]bool{"api": true}}
	init := &stubInit{states: map[string]bool{"dnsmasq.service": false}}
	prober := NewProber(entries, containers, init, nil, nil)

	prober.Refresh(context.Background())

	if prober.AllHealthy() {
		t.Fatal("expected AllHealthy to be false with an inactive unit")
	}
	statuses := prober.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Healthy || statuses[1].Healthy {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestProberProbeErrorCountsUnhealthy(t *testing.T) {
	entries := []config.Service{{Label: "API", Container: "api"}}
	containers := &stubContainers{errs: map[string]error{"api": errors.New("daemon unreachable")}}
	prober := NewProber(entries, containers, nil, nil, nil)

	prober.Refresh(context.Background())

	if prober.AllHealthy() {
		t.Fatal("expected probe error to count as unhealthy")
	}
}

func TestProberTransitionHookFiresOnce(t *testing.T) {
	entries := []config.Service{{Label: "API", Container: "api"}}
	containers := &stubContainers{states: map[string]bool{"api": true}}
	prober := NewProber(entries, containers, nil, nil, nil)

	var transitions []bool
	prober.SetOnTransition(func(_ string, healthy bool) {
		transitions = append(transitions, healthy)
	})

	prober.Refresh(context.Background())
	prober.Refresh(context.Background())
	containers.states["api"] = false
	prober.Refresh(context.Background())

	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d: %v", len(transitions), transitions)
	}
	if !transitions[0] || transitions[1] {
		t.Fatalf("unexpected transition order: %v", transitions)
	}
}

func TestProberAllHealthyWithNoServices(t *testing.T) {
	prober := NewProber(nil, nil, nil, nil, nil)
	if !prober.AllHealthy() {
		t.Fatal("expected AllHealthy to be true with no tracked services")
	}
}

type blockingContainers struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingContainers) Healthy(context.Context, string) (bool, error) {
	b.entered <- struct{}{}
	<-b.release
	return true, nil
}

func (b *blockingContainers) Close() error { return nil }

func TestProberReadsNotBlockedBySlowSweep(t *testing.T) {
	containers := &blockingContainers{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	entries := []config.Service{{Label: "API", Container: "api"}}
	prober := NewProber(entries, containers, nil, nil, nil)

	done := make(chan struct{})
	go func() {
		prober.Refresh(context.Background())
		close(done)
	}()
	<-containers.entered

	// The sweep is stalled inside the backend; reads must still return.
	if got := prober.Statuses(); len(got) != 1 || got[0].Healthy {
		t.Fatalf("statuses mid-sweep = %+v", got)
	}
	if prober.AllHealthy() {
		t.Fatal("service must stay unhealthy until the sweep lands")
	}

	close(containers.release)
	<-done
	if !prober.AllHealthy() {
		t.Fatal("sweep result not visible after refresh returned")
	}
}
