package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tally/pkg/event"
)

type unknownTransition struct{}

func (unknownTransition) Kind() Kind { return "userEvents/unknown" }

func TestReduceRoutesTransitions(t *testing.T) {
	at := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	s := Reduce(State{}, LoadSuccess{Events: []event.UserEvent{ev(1, "a")}})
	s = Reduce(s, CreateSuccess{Event: ev(2, "b")})
	s = Reduce(s, UpdateSuccess{Event: ev(1, "renamed")})
	s = Reduce(s, DeleteSuccess{ID: 2})
	s = Reduce(s, StartRecorder{At: at})

	assert.Equal(t, []int64{1}, s.UserEvents.AllIDs)
	assert.Equal(t, "renamed", s.UserEvents.ByID[1].Title)
	assert.Equal(t, "2024-03-01T09:30:00.000Z", s.Recorder.DateStart)
	assert.True(t, s.Recorder.Running())

	s = Reduce(s, StopRecorder{})
	assert.Equal(t, "", s.Recorder.DateStart)
}

func TestReduceIgnoresRequestsFailuresAndUnknownKinds(t *testing.T) {
	s := Reduce(State{}, LoadSuccess{Events: []event.UserEvent{ev(1, "a")}})
	for _, tr := range []Transition{
		LoadRequest{}, LoadFailure{Error: "x"},
		CreateRequest{}, CreateFailure{Error: "x"},
		DeleteRequest{ID: 1}, DeleteFailure{ID: 1, Error: "x"},
		UpdateRequest{ID: 1, Title: "y"}, UpdateFailure{ID: 1, Error: "x"},
		unknownTransition{},
	} {
		assert.Equal(t, s, Reduce(s, tr), "kind %s", tr.Kind())
	}
}

func TestStartWhileRunningMovesAnchor(t *testing.T) {
	first := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	s := Reduce(State{}, StartRecorder{At: first})
	s = Reduce(s, StartRecorder{At: second})

	since, ok := s.Recorder.Since()
	require.True(t, ok)
	assert.True(t, since.Equal(second))
}

func TestContainerNotifiesInOrder(t *testing.T) {
	c := NewContainer(State{})
	var kinds []Kind
	unsubscribe := c.Subscribe(func(s State, tr Transition) {
		kinds = append(kinds, tr.Kind())
	})

	c.Dispatch(CreateRequest{})
	c.Dispatch(CreateSuccess{Event: ev(5, "a")})
	unsubscribe()
	c.Dispatch(DeleteSuccess{ID: 5})

	assert.Equal(t, []Kind{KindCreateRequest, KindCreateSuccess}, kinds)
	assert.Equal(t, 0, c.State().UserEvents.Len())
}

func TestContainerChangesStreamsAndCloses(t *testing.T) {
	c := NewContainer(State{})
	ch, stop := c.Changes(4)

	c.Dispatch(CreateSuccess{Event: ev(1, "a")})
	got := <-ch
	assert.Equal(t, KindCreateSuccess, got.Transition.Kind())
	assert.Equal(t, 1, got.State.UserEvents.Len())

	stop()
	stop()
	c.Dispatch(DeleteSuccess{ID: 1})
	_, open := <-ch
	assert.False(t, open)
}

func TestContainerChangesKeepNewestWhenFull(t *testing.T) {
	c := NewContainer(State{})
	ch, stop := c.Changes(2)

	for i := int64(1); i <= 3; i++ {
		c.Dispatch(CreateSuccess{Event: ev(i, "x")})
	}
	stop()

	var got []Change
	for change := range ch {
		got = append(got, change)
	}
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].State.UserEvents.Len())
	assert.Equal(t, 3, got[1].State.UserEvents.Len())
	assert.Equal(t, c.State().UserEvents.AllIDs, got[1].State.UserEvents.AllIDs)
}

func TestContainerConcurrentDispatch(t *testing.T) {
	c := NewContainer(State{})
	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c.Dispatch(CreateSuccess{Event: ev(id, "x")})
		}(i)
	}
	wg.Wait()
	requireConsistent(t, c.State().UserEvents)
	assert.Equal(t, 50, c.State().UserEvents.Len())
}
