package event

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatTimeMillisUTC(t *testing.T) {
	loc := time.FixedZone("x", 2*60*60)
	ts := time.Date(2024, time.February, 1, 3, 4, 5, 678_900_000, loc)
	if got, want := FormatTime(ts), "2024-02-01T01:04:05.678Z"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDateKeyUsesUTCDay(t *testing.T) {
	cases := map[string]string{
		"2024-01-31T23:00:00Z":      "2024-01-31",
		"2024-02-01T01:00:00.000Z":  "2024-02-01",
		"2024-02-01T01:00:00+02:00": "2024-01-31",
		"":                          "0001-01-01",
		"garbage":                   "0001-01-01",
	}
	for in, want := range cases {
		if got := DateKey(in); got != want {
			t.Errorf("DateKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUserEventWireFormat(t *testing.T) {
	e := New(42, "2024-01-31T23:00:00.000Z", "2024-02-01T01:00:00.000Z")
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":42,"title":"Edit me ..","startDate":"2024-01-31T23:00:00.000Z","endDate":"2024-02-01T01:00:00.000Z"}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", b, want)
	}
}

func TestRandomIDsInRange(t *testing.T) {
	var g RandomIDs
	for i := 0; i < 1000; i++ {
		id := g.NextID()
		if id < minRandomID || id >= maxRandomID {
			t.Fatalf("id %d out of range", id)
		}
	}
}
