package timeutil

import (
	"testing"
	"time"

	"tableflip.dev/tally/pkg/event"
)

func TestParseSpanEmpty(t *testing.T) {
	d, err := ParseSpan("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected zero span, got %v", d)
	}
}

func TestParseSpanComposite(t *testing.T) {
	d, err := ParseSpan("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if d != want {
		t.Fatalf("expected %v, got %v", want, d)
	}
	if got := FormatSpan(d); got != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestParseSpanInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3y", "5"} {
		if _, err := ParseSpan(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{500 * time.Millisecond, "0s"},
		{time.Hour + time.Minute + time.Second, "1h1m1s"},
		{26 * time.Hour, "1d2h"},
	}
	for _, tc := range tests {
		if got := FormatSpan(tc.d); got != tc.want {
			t.Errorf("FormatSpan(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	events := []event.UserEvent{
		{ID: 1, EndDate: "2024-03-10T11:00:00.000Z"},
		{ID: 2, EndDate: "2024-03-01T11:00:00.000Z"},
		{ID: 3, EndDate: ""},
	}

	got := Since(events, 24*time.Hour, now)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if all := Since(events, 0, now); len(all) != 3 {
		t.Fatalf("zero span should keep everything, got %d", len(all))
	}
}
