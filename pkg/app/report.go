package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/tally/pkg/event"
)

// ReportItem is one interval counted in a report.
type ReportItem struct {
	Event    event.UserEvent
	Duration time.Duration
}

// ReportSection groups the intervals sharing a title.
type ReportSection struct {
	Title   string
	Total   time.Duration
	Entries []ReportItem
}

// ReportResult totals the recorded time in a window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    time.Duration
	// Skipped counts intervals in the collection with an unparseable start or
	// end.
	Skipped int
}

// Report reloads the collection and totals the intervals that ended between
// since and until, grouped by title. Sections are ordered by total time,
// largest first.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	if err := s.Load(ctx); err != nil {
		return ReportResult{}, err
	}
	return BuildReport(s.Events(), since, until), nil
}

// BuildReport is Report over an explicit event list.
func BuildReport(events []event.UserEvent, since, until time.Time) ReportResult {
	res := ReportResult{Since: since, Until: until}
	grouped := make(map[string]*ReportSection)
	for _, e := range events {
		start, err := event.ParseTime(e.StartDate)
		if err != nil {
			res.Skipped++
			continue
		}
		end, err := event.ParseTime(e.EndDate)
		if err != nil {
			res.Skipped++
			continue
		}
		if end.Before(since) || end.After(until) {
			continue
		}
		d := end.Sub(start)
		sec := ensureSection(grouped, e.Title)
		sec.Entries = append(sec.Entries, ReportItem{Event: e, Duration: d})
		sec.Total += d
		res.Total += d
	}

	res.Sections = make([]ReportSection, 0, len(grouped))
	for _, sec := range grouped {
		res.Sections = append(res.Sections, *sec)
	}
	sort.Slice(res.Sections, func(i, j int) bool {
		a, b := res.Sections[i], res.Sections[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Title < b.Title
	})
	return res
}

func ensureSection(grouped map[string]*ReportSection, title string) *ReportSection {
	if sec, ok := grouped[title]; ok {
		return sec
	}
	sec := &ReportSection{Title: title}
	grouped[title] = sec
	return sec
}
