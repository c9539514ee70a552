package history

import (
	"context"
	"testing"

	"periphd/internal/config"
)

func openTestStore(t *testing.T, maxEvents int) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()
	cfg.History.MaxEvents = maxEvents

	store, err := Open(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t, 100)
	ctx := context.Background()

	if err := store.Append(ctx, KindDaemonStart, "", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(ctx, KindServiceHealth, "API", "unhealthy"); err != nil {
		t.Fatal(err)
	}

	events, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != KindServiceHealth || events[0].Subject != "API" {
		t.Fatalf("newest event = %+v", events[0])
	}
	if events[0].SessionID != store.SessionID() {
		t.Fatal("event session id does not match the store session")
	}
}

func TestRecentFiltersByKind(t *testing.T) {
	store := openTestStore(t, 100)
	ctx := context.Background()

	store.Append(ctx, KindDaemonStart, "", "")
	store.Append(ctx, KindShutdown, "", "button")
	store.Append(ctx, KindServiceHealth, "DNS", "healthy")

	events, err := store.Recent(ctx, KindShutdown, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Detail != "button" {
		t.Fatalf("filtered events = %+v", events)
	}
}

func TestAppendPrunesBeyondCap(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		if err := store.Append(ctx, KindConfigUpdate, "interval", ""); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events after prune, want 3", len(events))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.LogDir = t.TempDir()

	store, err := Open(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	first := store.SessionID()
	store.Append(context.Background(), KindDaemonStart, "", "")
	store.Close()

	store, err = Open(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if store.SessionID() == first {
		t.Fatal("reopened store reused the previous session id")
	}
}
