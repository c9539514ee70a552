package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBuildConfigPartialEmpty(t *testing.T) {
	partial := buildConfigPartial(setFlagValues{}, changedSet())
	if !partial.Empty() {
		t.Fatalf("expected empty partial, got %+v", partial)
	}
}

func TestBuildConfigPartialPicksChangedFields(t *testing.T) {
	values := setFlagValues{
		tempUnit: "F",
		rotation: 180,
		interval: 2.5,
		rgbColor: "#00ff00",
	}
	partial := buildConfigPartial(values, changedSet("temp-unit", "interval", "rgb-color"))

	if partial.TemperatureUnit == nil || *partial.TemperatureUnit != "F" {
		t.Fatalf("expected temperature unit F, got %+v", partial.TemperatureUnit)
	}
	if partial.OLEDRotation != nil {
		t.Fatalf("rotation was not passed but made it into the partial")
	}
	if partial.Interval == nil || *partial.Interval != 2.5 {
		t.Fatalf("expected interval 2.5, got %+v", partial.Interval)
	}
	if partial.RGB == nil || partial.RGB.Color == nil || *partial.RGB.Color != "#00ff00" {
		t.Fatalf("expected rgb color in partial, got %+v", partial.RGB)
	}
	if partial.RGB.Enabled != nil {
		t.Fatalf("rgb enable was not passed but made it into the partial")
	}
	if partial.Fan != nil {
		t.Fatalf("fan block was not passed but made it into the partial")
	}
}

func TestBuildConfigPartialFanThresholds(t *testing.T) {
	values := setFlagValues{fanOn: 60, fanOff: 50}
	partial := buildConfigPartial(values, changedSet("fan-on", "fan-off"))
	if partial.Fan == nil || partial.Fan.OnTempC == nil || partial.Fan.OffTempC == nil {
		t.Fatalf("expected both fan thresholds, got %+v", partial.Fan)
	}
	if *partial.Fan.OnTempC != 60 || *partial.Fan.OffTempC != 50 {
		t.Fatalf("unexpected thresholds: on=%v off=%v", *partial.Fan.OnTempC, *partial.Fan.OffTempC)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	if !strings.Contains(out.String(), "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out.String())
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Fatal("expected overwrite to be refused")
	}
}
