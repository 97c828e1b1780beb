package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
)

// Format selects a machine readable output.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Day is the structured form of one calendar day.
type Day struct {
	Key    string            `json:"day" yaml:"day"`
	Events []event.UserEvent `json:"events" yaml:"events"`
}

// Days flattens a display into its structured form, newest day first.
func Days(d calendar.Display) []Day {
	days := make([]Day, 0, len(d.Keys))
	d.Days(func(key string, events []*event.UserEvent) {
		day := Day{Key: key, Events: make([]event.UserEvent, 0, len(events))}
		for _, e := range events {
			day.Events = append(day.Events, *e)
		}
		days = append(days, day)
	})
	return days
}

// Structured writes v as JSON or YAML.
func Structured(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", f)
}
