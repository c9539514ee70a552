package health

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"periphd/internal/fault"
)

const initProbeTimeout = 10 * time.Second

// InitClient reports whether a named init-system unit is active.
type InitClient interface {
	Active(ctx context.Context, unit string) (bool, error)
}

// SystemdClient probes units with systemctl. A non-zero exit status means
// the unit is inactive; a failure to run systemctl at all is an error.
type SystemdClient struct {
	binary  string
	timeout time.Duration
}

func NewSystemdClient() *SystemdClient {
	return &SystemdClient{binary: "systemctl", timeout: initProbeTimeout}
}

func (c *SystemdClient) Active(ctx context.Context, unit string) (bool, error) {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, c.binary, "is-active", "--quiet", unit)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if cctx.Err() != nil {
		return false, fault.Wrap(fault.ErrTimeout, "health", "systemctl",
			fmt.Sprintf("probe of unit %s timed out", unit), cctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fault.Wrap(fault.ErrExternalTool, "health", "systemctl",
		fmt.Sprintf("failed to run systemctl for unit %s", unit), err)
}
