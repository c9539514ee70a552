package tick_test

import (
	"testing"
	"time"

	"periphd/internal/tick"
)

func TestGateFirstCheckIsDue(t *testing.T) {
	g := tick.NewGate(12 * time.Second)
	if !g.Due(time.Unix(1000, 0)) {
		t.Fatal("first check should be due")
	}
}

func TestGateNeverFiresBeforeInterval(t *testing.T) {
	base := time.Unix(1000, 0)
	g := tick.NewGate(12 * time.Second)
	g.Due(base)

	for _, offset := range []time.Duration{time.Second, 6 * time.Second, 12 * time.Second} {
		if g.Due(base.Add(offset)) {
			t.Fatalf("gate fired %s after previous fire, interval is 12s", offset)
		}
	}
	if !g.Due(base.Add(13 * time.Second)) {
		t.Fatal("gate should fire after 13s")
	}
}

func TestGateAtMostOncePerInterval(t *testing.T) {
	base := time.Unix(0, 0)
	g := tick.NewGate(12 * time.Second)

	fires := 0
	// One tick at t=0 and one at t=13: exactly two fires, not three. The
	// second elapsed interval is measured from t=13, not from a schedule.
	for _, at := range []time.Duration{0, 13 * time.Second, 14 * time.Second, 24 * time.Second} {
		if g.Due(base.Add(at)) {
			fires++
		}
	}
	if fires != 2 {
		t.Fatalf("expected 2 fires, got %d", fires)
	}
}

func TestGateSetIntervalKeepsLastFire(t *testing.T) {
	base := time.Unix(1000, 0)
	g := tick.NewGate(12 * time.Second)
	g.Due(base)
	g.SetInterval(3 * time.Second)
	if g.Due(base.Add(2 * time.Second)) {
		t.Fatal("shrinking the interval must not double fire within it")
	}
	if !g.Due(base.Add(4 * time.Second)) {
		t.Fatal("gate should honor the new interval")
	}
}
