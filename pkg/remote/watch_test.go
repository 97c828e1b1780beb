package remote

import (
	"context"
	"testing"
	"time"
)

func TestDiskWatchEmitsChanges(t *testing.T) {
	d, err := OpenDisk(t.TempDir(), "events")
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if _, err := d.Add(ctx, doc{ID: 1, Title: "hello"}); err != nil {
		t.Fatalf("add document: %v", err)
	}

	select {
	case change := <-ch:
		if change.Collection != "events" {
			t.Fatalf("expected collection 'events', got %q", change.Collection)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestDiskWatchClosesOnCancel(t *testing.T) {
	d, err := OpenDisk(t.TempDir(), "events")
	if err != nil {
		t.Fatalf("open disk: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}
