package power

import (
	"context"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"

	"periphd/internal/fault"
)

const shutdownTimeout = 30 * time.Second

// SystemShutdown flushes filesystem buffers and powers the machine off,
// preferring a clean systemd poweroff with a raw syscall as the fallback.
// Safe to invoke repeatedly while the shutdown is in flight.
func SystemShutdown(ctx context.Context, _ string) error {
	unix.Sync()

	cctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := exec.CommandContext(cctx, "systemctl", "poweroff").Run(); err == nil {
		return nil
	}

	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fault.Wrap(fault.ErrExternalTool, "power", "poweroff", "failed to power off system", err)
	}
	return nil
}
