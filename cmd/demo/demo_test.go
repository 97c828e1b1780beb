package main

import (
	"testing"
	"time"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
)

func TestSampleCrossesMidnight(t *testing.T) {
	var next int64
	ids := event.IDFunc(func() int64 { next++; return next })
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

	events := Sample(now, ids)
	if len(events) != 14 {
		t.Fatalf("expected 14 events, got %d", len(events))
	}

	d, ok := calendar.Build(events)
	if !ok {
		t.Fatal("expected a display")
	}
	// Late evenings end on the next sampled day.
	if len(d.Keys) != 7 {
		t.Fatalf("unexpected day count %d: %v", len(d.Keys), d.Keys)
	}
	crossed := 0
	for _, e := range events {
		if event.DateKey(e.StartDate) != event.DateKey(e.EndDate) {
			crossed++
		}
	}
	if crossed != 3 {
		t.Fatalf("expected 3 intervals crossing midnight, got %d", crossed)
	}
}
