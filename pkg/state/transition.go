package state

import (
	"time"

	"tableflip.dev/tally/pkg/event"
)

// Kind names a transition.
type Kind string

const (
	KindLoadRequest   Kind = "userEvents/load-request"
	KindLoadSuccess   Kind = "userEvents/load-success"
	KindLoadFailure   Kind = "userEvents/load-failure"
	KindCreateRequest Kind = "userEvents/create-event"
	KindCreateSuccess Kind = "userEvents/create-success"
	KindCreateFailure Kind = "userEvents/create-failure"
	KindDeleteRequest Kind = "userEvents/delete_request"
	KindDeleteSuccess Kind = "userEvents/delete_success"
	KindDeleteFailure Kind = "userEvents/delete_failure"
	KindUpdateRequest Kind = "userEvents/update_request"
	KindUpdateSuccess Kind = "userEvents/update_success"
	KindUpdateFailure Kind = "userEvents/update_failure"
	KindStartRecorder Kind = "Start-Recorder"
	KindStopRecorder  Kind = "Stop-Recorder"
)

// Transition is a request to change State. The concrete types below form a
// closed set; Reduce ignores anything else.
type Transition interface {
	Kind() Kind
}

// Failure is implemented by every *_FAILURE transition.
type Failure interface {
	Transition
	Message() string
}

// Pending is implemented by every *_REQUEST transition. Requests never change
// State; they exist so subscribers can show progress.
type Pending interface {
	Transition
	pending()
}

type LoadRequest struct{}

type LoadSuccess struct {
	Events []event.UserEvent
}

type LoadFailure struct {
	Error string
}

type CreateRequest struct{}

type CreateSuccess struct {
	Event event.UserEvent
}

type CreateFailure struct {
	Error string
}

type DeleteRequest struct {
	ID int64
}

type DeleteSuccess struct {
	ID int64
}

type DeleteFailure struct {
	ID    int64
	Error string
}

type UpdateRequest struct {
	ID    int64
	Title string
}

type UpdateSuccess struct {
	Event event.UserEvent
}

type UpdateFailure struct {
	ID    int64
	Error string
}

// StartRecorder carries its own timestamp so Reduce stays a pure function.
type StartRecorder struct {
	At time.Time
}

type StopRecorder struct{}

func (LoadRequest) Kind() Kind   { return KindLoadRequest }
func (LoadSuccess) Kind() Kind   { return KindLoadSuccess }
func (LoadFailure) Kind() Kind   { return KindLoadFailure }
func (CreateRequest) Kind() Kind { return KindCreateRequest }
func (CreateSuccess) Kind() Kind { return KindCreateSuccess }
func (CreateFailure) Kind() Kind { return KindCreateFailure }
func (DeleteRequest) Kind() Kind { return KindDeleteRequest }
func (DeleteSuccess) Kind() Kind { return KindDeleteSuccess }
func (DeleteFailure) Kind() Kind { return KindDeleteFailure }
func (UpdateRequest) Kind() Kind { return KindUpdateRequest }
func (UpdateSuccess) Kind() Kind { return KindUpdateSuccess }
func (UpdateFailure) Kind() Kind { return KindUpdateFailure }
func (StartRecorder) Kind() Kind { return KindStartRecorder }
func (StopRecorder) Kind() Kind  { return KindStopRecorder }

func (f LoadFailure) Message() string   { return f.Error }
func (f CreateFailure) Message() string { return f.Error }
func (f DeleteFailure) Message() string { return f.Error }
func (f UpdateFailure) Message() string { return f.Error }

func (LoadRequest) pending()   {}
func (CreateRequest) pending() {}
func (DeleteRequest) pending() {}
func (UpdateRequest) pending() {}
