package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"periphd/internal/config"
)

const userAgent = "periphd/0.1.0"

// Service defines the push notification surface exposed to the daemon.
type Service interface {
	NotifyShutdown(ctx context.Context, reason string) error
	NotifyServiceHealth(ctx context.Context, label string, healthy bool) error
	NotifyDaemonStarted(ctx context.Context, peripherals []string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		notifyShutdown: cfg.Notifications.Shutdown,
		notifyHealth:   cfg.Notifications.Health,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	notifyShutdown bool
	notifyHealth   bool
}

func (n *ntfyService) NotifyShutdown(ctx context.Context, reason string) error {
	if !n.notifyShutdown {
		return nil
	}
	data := payload{
		title:    "periphd - Shutting Down",
		message:  fmt.Sprintf("System shutdown triggered: %s", reason),
		tags:     []string{"periphd", "power", "shutdown"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyServiceHealth(ctx context.Context, label string, healthy bool) error {
	if !n.notifyHealth {
		return nil
	}
	label = strings.TrimSpace(label)
	data := payload{
		title:    "periphd - Service Recovered",
		message:  fmt.Sprintf("Service healthy again: %s", label),
		tags:     []string{"periphd", "health", "recovered"},
	}
	if !healthy {
		data = payload{
			title:    "periphd - Service Down",
			message:  fmt.Sprintf("Service unhealthy: %s", label),
			tags:     []string{"periphd", "health", "alert"},
			priority: "high",
		}
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyDaemonStarted(ctx context.Context, peripherals []string) error {
	message := "Daemon started with no peripherals"
	if len(peripherals) > 0 {
		message = fmt.Sprintf("Daemon started with: %s", strings.Join(peripherals, ", "))
	}
	data := payload{
		title:   "periphd - Started",
		message: message,
		tags:    []string{"periphd", "daemon", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "periphd - Test",
		message:  "Notification system test",
		tags:     []string{"periphd", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyShutdown(context.Context, string) error              { return nil }
func (noopService) NotifyServiceHealth(context.Context, string, bool) error   { return nil }
func (noopService) NotifyDaemonStarted(context.Context, []string) error       { return nil }
func (noopService) TestNotification(context.Context) error                    { return nil }
