package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"

	"periphd/internal/fault"
)

// ContainerClient reports whether a named container is running and passing
// its health check, when one is defined.
type ContainerClient interface {
	Healthy(ctx context.Context, name string) (bool, error)
	Close() error
}

// DockerClient checks containers through the Docker Engine API.
type DockerClient struct {
	api *client.Client
}

// NewDockerClient connects using the standard environment (DOCKER_HOST and
// friends) and negotiates the API version with the daemon.
func NewDockerClient() (*DockerClient, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fault.Wrap(fault.ErrExternalTool, "health", "docker_connect", "failed to create docker client", err)
	}
	return &DockerClient{api: api}, nil
}

// Healthy reports true when the container is running and either defines no
// health check or its health check currently passes. A missing container is
// unhealthy, not an error.
func (c *DockerClient) Healthy(ctx context.Context, name string) (bool, error) {
	info, err := c.api.ContainerInspect(ctx, name)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, fault.Wrap(fault.ErrExternalTool, "health", "docker_inspect",
			fmt.Sprintf("failed to inspect container %s", name), err)
	}
	if info.State == nil || !info.State.Running {
		return false, nil
	}
	if info.State.Health == nil || info.State.Health.Status == "" {
		return true, nil
	}
	return strings.EqualFold(info.State.Health.Status, "healthy"), nil
}

func (c *DockerClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}
