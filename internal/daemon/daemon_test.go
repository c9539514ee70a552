package daemon

import (
	"context"
	"testing"
	"time"

	"periphd/internal/config"
	"periphd/internal/history"
	"periphd/internal/orchestrator"
	"periphd/internal/periph"
	"periphd/internal/sysinfo"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()
	cfg.Daemon.MetricsBind = ""
	return &cfg
}

func testOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(periph.NewSet(), 50*time.Millisecond,
		orchestrator.Components{}, sysinfo.NewSystemSource(""), nil, nil)
}

func newTestDaemon(t *testing.T, cfg *config.Config, store *history.Store) *Daemon {
	t.Helper()
	d, err := New(cfg, testOrchestrator(), store, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDaemon(t, cfg, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail while running")
	}

	status := d.Status()
	if !status.Running || status.PID == 0 {
		t.Fatalf("status = %+v", status)
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("daemon still running after Stop")
	}
	d.Stop() // idempotent
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	first := newTestDaemon(t, cfg, nil)
	if err := first.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer first.Stop()

	second := newTestDaemon(t, cfg, nil)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected the lock to exclude a second instance")
	}
}

func TestDaemonJournalsLifecycle(t *testing.T) {
	cfg := testConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDaemon(t, cfg, store)
	defer d.Close()

	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	d.HandleServiceTransition("API", false)
	d.HandleShutdown("button")
	d.Stop()

	events, err := d.Events(context.Background(), "", 10)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make(map[string]int)
	for _, event := range events {
		kinds[event.Kind]++
	}
	for _, want := range []string{
		history.KindDaemonStart,
		history.KindDaemonStop,
		history.KindServiceHealth,
		history.KindShutdown,
	} {
		if kinds[want] == 0 {
			t.Fatalf("missing journal kind %s in %v", want, kinds)
		}
	}
}

func TestDaemonEventsWithJournalDisabled(t *testing.T) {
	d := newTestDaemon(t, testConfig(t), nil)
	if _, err := d.Events(context.Background(), "", 10); err == nil {
		t.Fatal("expected an error with the journal disabled")
	}
}

func TestDaemonTestNotificationWithoutTopic(t *testing.T) {
	d := newTestDaemon(t, testConfig(t), nil)
	sent, message, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent || message == "" {
		t.Fatalf("sent = %v, message = %q", sent, message)
	}
}
