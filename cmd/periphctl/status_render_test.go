package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"periphd/internal/health"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Service loop", statusError, "stopped", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Service loop:", "[ERROR] stopped")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Service loop", statusOK, "up 5s", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestServiceRows(t *testing.T) {
	rows := serviceRows([]health.Status{
		{Label: "Plex", Backend: "container", Name: "plex", Healthy: true},
		{Label: "SSH", Backend: "init", Name: "sshd.service", Healthy: false},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][3] != "OK" {
		t.Fatalf("expected healthy service to render OK, got %q", rows[0][3])
	}
	if rows[1][3] != "DOWN" {
		t.Fatalf("expected unhealthy service to render DOWN, got %q", rows[1][3])
	}
}

func TestRenderTableIncludesHeaders(t *testing.T) {
	out := renderTable(
		[]string{"Service", "State"},
		[][]string{{"plex", "OK"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	if !strings.Contains(out, "SERVICE") && !strings.Contains(out, "Service") {
		t.Fatalf("expected header in table output: %s", out)
	}
	if !strings.Contains(out, "plex") {
		t.Fatalf("expected row content in table output: %s", out)
	}
}
