// Command demo fills the configured collection with a week of sample
// intervals, including some that cross midnight, for trying out the UI.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/config"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/logging"
	"tableflip.dev/tally/pkg/remote"
)

var titles = []string{"planning", "code review", "deep work", "support", "writing"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	coll, err := remote.Open(cfg.RemoteOptions())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	svc := app.New(coll, logging.Discard())
	for _, e := range Sample(time.Now().UTC(), event.RandomIDs{}) {
		if _, err := coll.Add(ctx, e); err != nil {
			log.Fatal(err)
		}
	}
	if err := svc.Load(ctx); err != nil {
		log.Fatal(err)
	}
	for _, e := range svc.Events() {
		fmt.Println(e.String())
	}
}

// Sample returns two intervals per day for the last week, ending the evening
// interval after midnight every other day.
func Sample(now time.Time, ids event.IDGenerator) []event.UserEvent {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var out []event.UserEvent
	for i := 6; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		morning := d.Add(9 * time.Hour)
		out = append(out, sample(ids, titles[i%len(titles)], morning, morning.Add(time.Duration(45+i*10)*time.Minute)))

		evening := d.Add(22 * time.Hour)
		length := 90 * time.Minute
		if i%2 == 1 {
			length = 3 * time.Hour
		}
		out = append(out, sample(ids, titles[(i+2)%len(titles)], evening, evening.Add(length)))
	}
	return out
}

func sample(ids event.IDGenerator, title string, start, end time.Time) event.UserEvent {
	e := event.New(ids.NextID(), event.FormatTime(start), event.FormatTime(end))
	e.Title = title
	return e
}
