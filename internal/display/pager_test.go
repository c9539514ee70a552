package display

import (
	"context"
	"testing"
	"time"

	"periphd/internal/config"
	"periphd/internal/health"
	"periphd/internal/sysinfo"
)

type fakeDriver struct {
	texts         []string
	invertedTexts []string
	clearCalls    int
	displayCalls  int
	offCalls      int
}

func (d *fakeDriver) IsReady() bool { return true }
func (d *fakeDriver) Bounds() Rect  { return Rect{W: 128, H: 64} }
func (d *fakeDriver) Clear() {
	d.clearCalls++
	d.texts = nil
	d.invertedTexts = nil
}
func (d *fakeDriver) Display() error {
	d.displayCalls++
	return nil
}
func (d *fakeDriver) Off() error {
	d.offCalls++
	return nil
}
func (d *fakeDriver) SetContrastPercent(int) error { return nil }
func (d *fakeDriver) SetRotation(int) error        { return nil }
func (d *fakeDriver) DrawText(text string, _, _ int, _ Align, inverted bool) {
	d.texts = append(d.texts, text)
	if inverted {
		d.invertedTexts = append(d.invertedTexts, text)
	}
}
func (d *fakeDriver) DrawRect(Rect, bool)                    {}
func (d *fakeDriver) DrawRoundedRect(Rect, int, bool)        {}
func (d *fakeDriver) DrawBarH(Rect, float64)                 {}
func (d *fakeDriver) DrawPieSlice(_, _, _ int, _, _ float64) {}

func (d *fakeDriver) hasText(want string) bool {
	for _, text := range d.texts {
		if text == want {
			return true
		}
	}
	return false
}

type fakeSource struct {
	snap sysinfo.Snapshot
}

func (s *fakeSource) Snapshot(context.Context) (sysinfo.Snapshot, error) {
	return s.snap, nil
}

type fixedContainers struct {
	healthy bool
	probes  int
}

func (c *fixedContainers) Healthy(context.Context, string) (bool, error) {
	c.probes++
	return c.healthy, nil
}

func (c *fixedContainers) Close() error { return nil }

func testDisplayConfig() config.Display {
	return config.Display{
		Enabled:             true,
		TemperatureUnit:     "C",
		QuietMinute:         3,
		PageSwitchSeconds:   12,
		ServiceCheckSeconds: 12,
		IPRotateSeconds:     3,
	}
}

func newTestPager(containers health.ContainerClient) (*Pager, *fakeDriver) {
	driver := &fakeDriver{}
	source := &fakeSource{snap: sysinfo.Snapshot{
		CPUTempC:      48.5,
		CPUPercent:    12,
		MemoryTotal:   1024 * 1024 * 1024,
		MemoryUsed:    512 * 1024 * 1024,
		MemoryPercent: 50,
		IPs:           []string{"10.0.0.2", "10.0.0.3"},
	}}
	var prober *health.Prober
	if containers != nil {
		prober = health.NewProber([]config.Service{{Label: "API", Container: "api"}}, containers, nil, nil, nil)
	}
	return NewPager(testDisplayConfig(), driver, source, prober, nil, nil), driver
}

// Minute 0 keeps the pager out of the quiet window.
func activeTime(sec int) time.Time {
	return time.Date(2026, 1, 1, 12, 0, sec, 0, time.UTC)
}

func runTick(t *testing.T, p *Pager, at time.Time) {
	t.Helper()
	p.now = func() time.Time { return at }
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("tick at %v: %v", at, err)
	}
}

func TestPagerAdvancesOncePerSwitchInterval(t *testing.T) {
	p, _ := newTestPager(&fixedContainers{healthy: true})

	runTick(t, p, activeTime(0))
	if got := p.CurrentPage(); got != "stats" {
		t.Fatalf("page after first tick = %s, want stats", got)
	}
	runTick(t, p, activeTime(5))
	if got := p.CurrentPage(); got != "stats" {
		t.Fatalf("page within switch interval = %s, want stats", got)
	}
	runTick(t, p, activeTime(13))
	if got := p.CurrentPage(); got != "services" {
		t.Fatalf("page after switch interval = %s, want services", got)
	}
	runTick(t, p, activeTime(14))
	if got := p.CurrentPage(); got != "services" {
		t.Fatalf("page advanced twice in one interval, got %s", got)
	}
}

func TestPagerBlanksInQuietWindowWhenHealthy(t *testing.T) {
	p, driver := newTestPager(&fixedContainers{healthy: true})

	quiet := time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)
	runTick(t, p, quiet)

	if len(driver.texts) != 0 {
		t.Fatalf("expected a blank frame, got texts %v", driver.texts)
	}
	if driver.displayCalls != 1 {
		t.Fatalf("displayCalls = %d, want 1", driver.displayCalls)
	}

	// The panel stays blank without re-pushing the frame every tick.
	runTick(t, p, quiet.Add(time.Second))
	if driver.displayCalls != 1 {
		t.Fatalf("displayCalls after second quiet tick = %d, want 1", driver.displayCalls)
	}
}

func TestPagerRendersInQuietWindowWhenUnhealthy(t *testing.T) {
	p, driver := newTestPager(&fixedContainers{healthy: false})

	quiet := time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)
	runTick(t, p, quiet)

	if len(driver.texts) == 0 {
		t.Fatal("expected the stats page to render while a service is down")
	}
}

func TestPagerShowsDisconnectedWithoutAddresses(t *testing.T) {
	p, driver := newTestPager(nil)
	p.source = &fakeSource{}

	runTick(t, p, activeTime(0))

	if !driver.hasText("DISCONNECTED") {
		t.Fatalf("expected DISCONNECTED, got texts %v", driver.texts)
	}
}

func TestPagerRotatesAddressesInOrder(t *testing.T) {
	p, driver := newTestPager(nil)

	runTick(t, p, activeTime(0))
	if !driver.hasText("10.0.0.2") {
		t.Fatalf("first address not shown: %v", driver.texts)
	}
	runTick(t, p, activeTime(1))
	if !driver.hasText("10.0.0.2") {
		t.Fatalf("address rotated before its interval: %v", driver.texts)
	}
	runTick(t, p, activeTime(4))
	if !driver.hasText("10.0.0.3") {
		t.Fatalf("second address not shown: %v", driver.texts)
	}
	runTick(t, p, activeTime(8))
	if !driver.hasText("10.0.0.2") {
		t.Fatalf("rotation did not wrap: %v", driver.texts)
	}
}

func TestServicesPageSkipsRedrawUntilRefresh(t *testing.T) {
	p, driver := newTestPager(&fixedContainers{healthy: true})
	p.pageIndex = 1 // services page

	runTick(t, p, activeTime(0))
	if driver.displayCalls != 1 {
		t.Fatalf("displayCalls = %d, want 1", driver.displayCalls)
	}
	runTick(t, p, activeTime(1))
	if driver.displayCalls != 1 {
		t.Fatalf("services page redrew without fresh probe state, displayCalls = %d", driver.displayCalls)
	}
}

func TestPagerDisabledBlanksPanel(t *testing.T) {
	p, driver := newTestPager(nil)
	p.SetEnabled(false)

	runTick(t, p, activeTime(0))

	if len(driver.texts) != 0 {
		t.Fatalf("expected a blank frame, got %v", driver.texts)
	}
	if driver.displayCalls != 1 {
		t.Fatalf("displayCalls = %d, want 1", driver.displayCalls)
	}
}

func TestPagerRefreshesHealthWithoutPanel(t *testing.T) {
	containers := &fixedContainers{healthy: false}
	prober := health.NewProber([]config.Service{{Label: "API", Container: "api"}}, containers, nil, nil, nil)
	source := &fakeSource{}
	p := NewPager(testDisplayConfig(), nil, source, prober, nil, nil)

	runTick(t, p, activeTime(0))
	if containers.probes != 1 {
		t.Fatalf("probes after first tick = %d, want 1", containers.probes)
	}
	if prober.AllHealthy() {
		t.Fatal("expected cached health to reflect the probe")
	}
	// Within the recheck interval nothing new is probed.
	runTick(t, p, activeTime(5))
	if containers.probes != 1 {
		t.Fatalf("probes within recheck interval = %d, want 1", containers.probes)
	}
	runTick(t, p, activeTime(13))
	if containers.probes != 2 {
		t.Fatalf("probes after recheck interval = %d, want 2", containers.probes)
	}
}

func TestServicesPageInvertsHealthyBadgeText(t *testing.T) {
	p, driver := newTestPager(&fixedContainers{healthy: true})
	p.pageIndex = 1 // services page

	runTick(t, p, activeTime(0))
	if len(driver.invertedTexts) != 1 || driver.invertedTexts[0] != "OK" {
		t.Fatalf("inverted texts = %v, want [OK] on the filled badge", driver.invertedTexts)
	}
}

func TestServicesPageDrawsUnhealthyBadgeTextPlain(t *testing.T) {
	p, driver := newTestPager(&fixedContainers{healthy: false})
	p.pageIndex = 1 // services page

	runTick(t, p, activeTime(0))
	if len(driver.invertedTexts) != 0 {
		t.Fatalf("inverted texts = %v, want none on the outlined badge", driver.invertedTexts)
	}
	if !driver.hasText("DOWN") {
		t.Fatal("unhealthy badge text missing")
	}
}
