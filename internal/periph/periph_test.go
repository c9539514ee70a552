package periph_test

import (
	"strings"
	"testing"

	"periphd/internal/periph"
)

func TestParseSetRejectsUnknownTags(t *testing.T) {
	_, err := periph.ParseSet([]string{"display", "toaster"})
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
	if !strings.Contains(err.Error(), "toaster") {
		t.Fatalf("error should name the offending tag: %v", err)
	}
}

func TestParseSetNormalizes(t *testing.T) {
	set, err := periph.ParseSet([]string{" Display ", "POWER-SUPERVISOR"})
	if err != nil {
		t.Fatalf("ParseSet failed: %v", err)
	}
	if !set.Has(periph.CapDisplay) || !set.Has(periph.CapPowerSupervisor) {
		t.Fatalf("missing expected capabilities: %v", set.List())
	}
	if set.Has(periph.CapFan) {
		t.Fatal("fan should be absent")
	}
}

func TestListIsStable(t *testing.T) {
	set := periph.NewSet(periph.CapRGB, periph.CapDisplay, periph.CapFan)
	got := set.Strings()
	want := []string{"display", "fan", "rgb"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
