package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"periphd/internal/logging"
)

// hotplugMonitor listens for udev netlink events on the buses the
// peripherals hang off and logs them for diagnostics. A bus device
// appearing or vanishing at runtime is the first thing to look at when a
// peripheral goes quiet.
type hotplugMonitor struct {
	logger *slog.Logger

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

var hotplugSubsystems = []string{"i2c", "spi", "gpio"}

func newHotplugMonitor(logger *slog.Logger) *hotplugMonitor {
	return &hotplugMonitor{
		logger: logging.NewComponentLogger(logger, "hotplug"),
	}
}

// Start begins listening for udev netlink events. A connect failure is
// non-fatal; the daemon runs without hotplug diagnostics.
func (m *hotplugMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Debug("hotplug monitor started")
	return nil
}

// Stop shuts down the hotplug monitor.
func (m *hotplugMonitor) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
	m.logger.Debug("hotplug monitor stopped")
}

func (m *hotplugMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	events := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(events, errs, m.buildMatcher())
	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-events:
			m.logger.Info("bus device event",
				logging.String("action", string(uevent.Action)),
				logging.String("subsystem", uevent.Env["SUBSYSTEM"]),
				logging.String("kobj", uevent.KObj))
		case err := <-errs:
			m.logger.Debug("hotplug monitor error", logging.Error(err))
		}
	}
}

func (m *hotplugMonitor) buildMatcher() netlink.Matcher {
	rules := &netlink.RuleDefinitions{}
	for _, subsystem := range hotplugSubsystems {
		rules.AddRule(netlink.RuleDefinition{
			Env: map[string]string{"SUBSYSTEM": subsystem},
		})
	}
	return rules
}
