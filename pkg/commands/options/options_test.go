package options

import (
	"testing"
	"time"
)

func TestGetOutput(t *testing.T) {
	tests := []struct {
		output  string
		json    bool
		want    string
		wantErr bool
	}{
		{output: "", want: ""},
		{output: "", json: true, want: "json"},
		{output: "yaml", want: "yaml"},
		{output: "json", json: true, want: "json"},
		{output: "yaml", json: true, wantErr: true},
		{output: "xml", wantErr: true},
	}
	for _, tc := range tests {
		o := ListOptions{Output: tc.output}
		got, err := o.GetOutput(tc.json)
		if tc.wantErr {
			if err == nil {
				t.Errorf("GetOutput(%q, %v) expected error", tc.output, tc.json)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Errorf("GetOutput(%q, %v) = %q, want %q", tc.output, tc.json, got, tc.want)
		}
	}
}

func TestGetSince(t *testing.T) {
	o := ListOptions{Since: "1d"}
	d, err := o.GetSince()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 24*time.Hour {
		t.Fatalf("expected 24h, got %v", d)
	}
}

func TestParseID(t *testing.T) {
	var o IDOptions
	if err := o.ParseID("482913"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ID != 482913 {
		t.Fatalf("expected 482913, got %d", o.ID)
	}
	for _, bad := range []string{"", "abc", "0", "-4"} {
		if err := o.ParseID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
