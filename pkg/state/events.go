package state

import (
	"tableflip.dev/tally/pkg/event"
)

// EventsState is the normalized cache of known events. ByID and AllIDs always
// describe the same set of ids; AllIDs keeps load/create order.
//
// Values are never mutated in place. Every transition returns a fresh value so
// a State handed to readers stays stable.
type EventsState struct {
	ByID   map[int64]event.UserEvent
	AllIDs []int64
}

// ReplaceAll rebuilds the state from events, in the order given. A repeated id
// keeps its first position and its last value.
func (s EventsState) ReplaceAll(events []event.UserEvent) EventsState {
	next := EventsState{
		ByID:   make(map[int64]event.UserEvent, len(events)),
		AllIDs: make([]int64, 0, len(events)),
	}
	for _, e := range events {
		if _, seen := next.ByID[e.ID]; !seen {
			next.AllIDs = append(next.AllIDs, e.ID)
		}
		next.ByID[e.ID] = e
	}
	return next
}

// Insert appends a new event. Inserting an id that is already present only
// replaces the stored value so AllIDs never holds duplicates.
func (s EventsState) Insert(e event.UserEvent) EventsState {
	next := s.clone(1)
	if _, ok := next.ByID[e.ID]; !ok {
		next.AllIDs = append(next.AllIDs, e.ID)
	}
	next.ByID[e.ID] = e
	return next
}

// Remove drops id. Unknown ids are a no-op.
func (s EventsState) Remove(id int64) EventsState {
	if _, ok := s.ByID[id]; !ok && !containsID(s.AllIDs, id) {
		return s
	}
	next := s.clone(0)
	delete(next.ByID, id)
	filtered := next.AllIDs[:0]
	for _, stored := range next.AllIDs {
		if stored != id {
			filtered = append(filtered, stored)
		}
	}
	next.AllIDs = filtered
	return next
}

// Upsert replaces the value for a known id without touching order, otherwise
// it inserts.
func (s EventsState) Upsert(e event.UserEvent) EventsState {
	if _, ok := s.ByID[e.ID]; !ok {
		return s.Insert(e)
	}
	next := s.clone(0)
	next.ByID[e.ID] = e
	return next
}

// Events lists the stored events in AllIDs order.
func (s EventsState) Events() []event.UserEvent {
	out := make([]event.UserEvent, 0, len(s.AllIDs))
	for _, id := range s.AllIDs {
		if e, ok := s.ByID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the event stored for id.
func (s EventsState) Get(id int64) (event.UserEvent, bool) {
	e, ok := s.ByID[id]
	return e, ok
}

// Len is the number of stored events.
func (s EventsState) Len() int {
	return len(s.AllIDs)
}

func (s EventsState) clone(extra int) EventsState {
	byID := make(map[int64]event.UserEvent, len(s.ByID)+extra)
	for id, e := range s.ByID {
		byID[id] = e
	}
	allIDs := make([]int64, len(s.AllIDs), len(s.AllIDs)+extra)
	copy(allIDs, s.AllIDs)
	return EventsState{ByID: byID, AllIDs: allIDs}
}

func containsID(ids []int64, id int64) bool {
	for _, stored := range ids {
		if stored == id {
			return true
		}
	}
	return false
}
