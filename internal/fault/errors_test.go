package fault_test

import (
	"errors"
	"testing"

	"periphd/internal/fault"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := fault.Wrap(fault.ErrTimeout, "health", "systemd probe", "nginx.service", cause)
	if !errors.Is(err, fault.ErrTimeout) {
		t.Fatalf("expected ErrTimeout marker in %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved in %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := fault.Wrap(nil, "display", "", "", nil)
	if !errors.Is(err, fault.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}
