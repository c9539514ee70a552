package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"periphd/internal/config"
	"periphd/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyShutdown(context.Background(), "button"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type capture struct {
	title    string
	tags     string
	priority string
	body     string
	calls    int
}

func captureServer(t *testing.T, captured *capture) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		captured.calls++
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func testService(t *testing.T, captured *capture) notifications.Service {
	t.Helper()
	server := captureServer(t, captured)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.RequestTimeout = 5
	cfg.Notifications.Shutdown = true
	cfg.Notifications.Health = true
	return notifications.NewService(&cfg)
}

func TestNtfyServiceFormatsShutdown(t *testing.T) {
	var captured capture
	svc := testService(t, &captured)

	if err := svc.NotifyShutdown(context.Background(), "low-power"); err != nil {
		t.Fatal(err)
	}
	if captured.title != "periphd - Shutting Down" {
		t.Fatalf("title = %q", captured.title)
	}
	if captured.body != "System shutdown triggered: low-power" {
		t.Fatalf("body = %q", captured.body)
	}
	if captured.priority != "high" {
		t.Fatalf("priority = %q", captured.priority)
	}
}

func TestNtfyServiceFormatsHealthTransitions(t *testing.T) {
	var captured capture
	svc := testService(t, &captured)

	if err := svc.NotifyServiceHealth(context.Background(), "API", false); err != nil {
		t.Fatal(err)
	}
	if captured.title != "periphd - Service Down" || captured.priority != "high" {
		t.Fatalf("down notification = %+v", captured)
	}

	if err := svc.NotifyServiceHealth(context.Background(), "API", true); err != nil {
		t.Fatal(err)
	}
	if captured.title != "periphd - Service Recovered" {
		t.Fatalf("recovery title = %q", captured.title)
	}
	if captured.body != "Service healthy again: API" {
		t.Fatalf("recovery body = %q", captured.body)
	}
}

func TestNtfyServiceHonorsToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Shutdown = false
	cfg.Notifications.Health = false

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyShutdown(context.Background(), "button"); err != nil {
		t.Fatal(err)
	}
	if err := svc.NotifyServiceHealth(context.Background(), "API", false); err != nil {
		t.Fatal(err)
	}
}
