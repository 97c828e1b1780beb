// Package recorder derives the running timer display from the recorder's
// anchor timestamp. Nothing here counts: every reading is now minus start.
package recorder

import (
	"fmt"
	"time"

	"tableflip.dev/tally/pkg/event"
)

// Elapsed is a split duration for display.
type Elapsed struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// Project splits now - dateStart into hours, minutes and seconds. An idle
// recorder (empty dateStart) or an anchor in the future projects to zero.
func Project(dateStart string, now time.Time) Elapsed {
	if dateStart == "" {
		return Elapsed{}
	}
	since, err := event.ParseTime(dateStart)
	if err != nil {
		return Elapsed{}
	}
	return Split(now.Sub(since))
}

// Split breaks d into whole hours, minutes and seconds.
func Split(d time.Duration) Elapsed {
	if d <= 0 {
		return Elapsed{}
	}
	total := int64(d / time.Second)
	hours := total / 3600
	rest := total - hours*3600
	minutes := rest / 60
	return Elapsed{
		Hours:   hours,
		Minutes: minutes,
		Seconds: rest - minutes*60,
	}
}

// String renders HH:MM:SS. Hours keep growing past 99.
func (e Elapsed) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", e.Hours, e.Minutes, e.Seconds)
}
