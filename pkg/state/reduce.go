// Package state is the client side state container: a normalized cache of
// events plus the recorder session, changed only through Transitions applied
// by Reduce.
package state

// State is the root of the container.
type State struct {
	UserEvents EventsState
	Recorder   RecorderState
}

// Reduce applies t to s and returns the next State. It never mutates s.
func Reduce(s State, t Transition) State {
	return State{
		UserEvents: reduceUserEvents(s.UserEvents, t),
		Recorder:   reduceRecorder(s.Recorder, t),
	}
}

func reduceUserEvents(s EventsState, t Transition) EventsState {
	switch t := t.(type) {
	case LoadSuccess:
		return s.ReplaceAll(t.Events)
	case CreateSuccess:
		return s.Insert(t.Event)
	case DeleteSuccess:
		return s.Remove(t.ID)
	case UpdateSuccess:
		return s.Upsert(t.Event)
	default:
		return s
	}
}

func reduceRecorder(r RecorderState, t Transition) RecorderState {
	switch t := t.(type) {
	case StartRecorder:
		return r.Start(t.At)
	case StopRecorder:
		return r.Stop()
	default:
		return r
	}
}
