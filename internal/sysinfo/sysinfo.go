package sysinfo

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Snapshot is one synchronous read of the host metrics the display consumes.
type Snapshot struct {
	CPUTempC      float64
	CPUPercent    float64
	MemoryTotal   uint64
	MemoryUsed    uint64
	MemoryPercent float64
	DiskTotal     uint64
	DiskUsed      uint64
	DiskPercent   float64
	IPs           []string
}

// Source provides host metric snapshots. The display pager depends on this
// interface so tests can supply fixed data.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// SystemSource reads live metrics through gopsutil. Individual sensor
// failures leave the corresponding field at its zero value; the read as a
// whole does not fail for a partially-instrumented board.
type SystemSource struct {
	diskPath string
}

// NewSystemSource builds a source that reports disk usage for diskPath.
func NewSystemSource(diskPath string) *SystemSource {
	if strings.TrimSpace(diskPath) == "" {
		diskPath = "/"
	}
	return &SystemSource{diskPath: diskPath}
}

// Snapshot implements Source.
func (s *SystemSource) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	snap.CPUTempC = cpuTemperature(ctx)

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = clampPercent(percents[0])
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		snap.MemoryTotal = vm.Total
		snap.MemoryUsed = vm.Used
		snap.MemoryPercent = clampPercent(vm.UsedPercent)
	}

	if usage, err := disk.UsageWithContext(ctx, s.diskPath); err == nil && usage != nil {
		snap.DiskTotal = usage.Total
		snap.DiskUsed = usage.Used
		snap.DiskPercent = clampPercent(usage.UsedPercent)
	}

	snap.IPs = activeIPs(ctx)
	return snap, nil
}

// cpuSensorKeys are tried in order; SBC kernels expose the SoC thermal zone
// under different hwmon names.
var cpuSensorKeys = []string{"cpu_thermal", "cpu-thermal", "soc_thermal", "coretemp", "k10temp"}

func cpuTemperature(ctx context.Context) float64 {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(stats) == 0 {
		return 0
	}
	for _, key := range cpuSensorKeys {
		for _, stat := range stats {
			if strings.Contains(strings.ToLower(stat.SensorKey), key) {
				return stat.Temperature
			}
		}
	}
	return stats[0].Temperature
}

func activeIPs(ctx context.Context) []string {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil
	}
	var ips []string
	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") || !hasFlag(iface.Flags, "up") {
			continue
		}
		for _, addr := range iface.Addrs {
			ip := addr.Addr
			if idx := strings.IndexByte(ip, '/'); idx >= 0 {
				ip = ip[:idx]
			}
			if ip == "" || strings.Contains(ip, ":") {
				continue // IPv6 does not fit the panel
			}
			ips = append(ips, ip)
		}
	}
	return ips
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
