// Package event holds the recorded time interval entity shared by the store,
// the remote collection and the calendar views.
package event

import (
	"fmt"
)

// DefaultTitle is given to every freshly recorded event until it is renamed.
const DefaultTitle = "Edit me .."

// UserEvent is a recorded interval. StartDate and EndDate are ISO-8601
// timestamps as produced by FormatTime.
type UserEvent struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
}

// New builds an event with the default title.
func New(id int64, startDate, endDate string) UserEvent {
	return UserEvent{
		ID:        id,
		Title:     DefaultTitle,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

func (e UserEvent) String() string {
	return fmt.Sprintf("%d %q %s..%s", e.ID, e.Title, e.StartDate, e.EndDate)
}
