package main

import (
	"testing"
	"time"

	"periphd/internal/config"
	"periphd/internal/logging"
)

func TestBuildComponentsWithNoPeripherals(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()
	cfg.Daemon.Peripherals = nil

	components, interval, caps := buildComponents(&cfg, logging.NewNop(), nil)

	if len(caps) != 0 {
		t.Fatalf("capability set = %v, want empty", caps.Strings())
	}
	if interval != time.Second {
		t.Fatalf("interval = %v, want 1s", interval)
	}
	if components.Pager != nil || components.Fan != nil || components.Lighting != nil || components.Power != nil {
		t.Fatal("expected no components without peripherals")
	}
}

func TestBuildComponentsRejectsUnknownTags(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()
	cfg.Daemon.Peripherals = []string{"fan", "warp-drive"}

	_, _, caps := buildComponents(&cfg, logging.NewNop(), nil)

	if !caps.Has("fan") {
		t.Fatal("known tag dropped alongside the unknown one")
	}
	if len(caps) != 1 {
		t.Fatalf("capability set = %v, want just fan", caps.Strings())
	}
}

func TestBuildComponentsProbesServicesWithoutDisplay(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()
	cfg.Daemon.Peripherals = nil
	cfg.Services = []config.Service{{Label: "SSH", Unit: "sshd.service"}}

	components, _, _ := buildComponents(&cfg, logging.NewNop(), nil)

	if components.Prober == nil {
		t.Fatal("expected a prober for the configured services")
	}
	if components.Pager != nil {
		t.Fatal("expected no pager without the display peripheral")
	}
}
