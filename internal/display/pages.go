package display

import (
	"context"
	"fmt"
	"time"

	"periphd/internal/fault"
	"periphd/internal/logging"
)

func (p *Pager) renderStats(ctx context.Context, now time.Time, _ bool) error {
	snap, err := p.source.Snapshot(ctx)
	if err != nil {
		return fault.Wrap(fault.ErrTransient, "display", "snapshot", "failed to read system stats", err)
	}

	if p.ipGate.Due(now) {
		p.rotateIP(snap.IPs)
	}

	b := p.driver.Bounds()
	p.driver.Clear()

	// CPU load as a pie in the top-left corner, temperature beside it.
	p.driver.DrawPieSlice(10, 10, 10, -90, -90+3.6*snap.CPUPercent)
	p.driver.DrawText(fmt.Sprintf("%.0f%%", snap.CPUPercent), 24, 4, AlignLeft, false)
	p.driver.DrawText(p.formatTemperature(snap.CPUTempC), b.W-2, 4, AlignRight, false)

	p.driver.DrawText("Mem", 0, 24, AlignLeft, false)
	p.driver.DrawBarH(Rect{X: 26, Y: 25, W: 44, H: 7}, snap.MemoryPercent/100)
	p.driver.DrawText(formatPair(snap.MemoryUsed, snap.MemoryTotal), b.W-2, 24, AlignRight, false)

	p.driver.DrawText("Disk", 0, 38, AlignLeft, false)
	p.driver.DrawBarH(Rect{X: 26, Y: 39, W: 44, H: 7}, snap.DiskPercent/100)
	p.driver.DrawText(formatPair(snap.DiskUsed, snap.DiskTotal), b.W-2, 38, AlignRight, false)

	p.driver.DrawText("IP", 0, 52, AlignLeft, false)
	p.driver.DrawText(p.currentIP, b.W-2, 52, AlignRight, false)

	if err := p.driver.Display(); err != nil {
		p.logger.Debug("failed to push stats page", logging.Error(err))
		return err
	}
	return nil
}

func (p *Pager) rotateIP(ips []string) {
	if len(ips) == 0 {
		p.currentIP = disconnectedLabel
		p.ipIndex = 0
		return
	}
	p.currentIP = ips[p.ipIndex%len(ips)]
	p.ipIndex = (p.ipIndex + 1) % len(ips)
}

// renderServices redraws only when the probe sweep produced fresh state;
// otherwise the previous frame stays on screen.
func (p *Pager) renderServices(_ context.Context, _ time.Time, refreshed bool) error {
	if p.drawn && !refreshed {
		return nil
	}

	b := p.driver.Bounds()
	p.driver.Clear()
	p.driver.DrawText("Service Health", b.W/2, 2, AlignCenter, false)

	y := 16
	for _, status := range p.prober.Statuses() {
		p.driver.DrawText(status.Label, 0, y, AlignLeft, false)
		badge := "OK"
		if !status.Healthy {
			badge = "DOWN"
		}
		p.driver.DrawRoundedRect(Rect{X: b.W - 34, Y: y - 1, W: 32, H: 11}, 3, status.Healthy)
		p.driver.DrawText(badge, b.W-18, y, AlignCenter, status.Healthy)
		y += 13
		if y > b.H-10 {
			break
		}
	}

	if err := p.driver.Display(); err != nil {
		p.logger.Debug("failed to push services page", logging.Error(err))
		return err
	}
	p.drawn = true
	return nil
}

func (p *Pager) formatTemperature(celsius float64) string {
	if p.tempUnit == "F" {
		return fmt.Sprintf("%.1f°F", celsius*9/5+32)
	}
	return fmt.Sprintf("%.1f°C", celsius)
}
