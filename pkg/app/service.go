package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/remote"
	"tableflip.dev/tally/pkg/state"
)

// FieldID is the document field holding the event id. Queries filter on it
// rather than on the collection's own document key.
const FieldID = "id"

// Messages carried by failure transitions.
const (
	MsgLoadFailed   = "Unable to load, Try again"
	MsgCreateFailed = "Unable to create, Try again"
	MsgDeleteFailed = "Unable to delete, Try again"
	MsgUpdateFailed = "Unable to update, Try again"
)

var (
	// ErrRemoteUnavailable wraps every rejected collection call.
	ErrRemoteUnavailable = errors.New("app: remote collection unavailable")
	// ErrTimeout is returned when Service.Timeout expires first.
	ErrTimeout = fmt.Errorf("%w: timed out", ErrRemoteUnavailable)
	// ErrWatchUnsupported is returned by Watch for collections that cannot
	// report changes.
	ErrWatchUnsupported = errors.New("app: collection does not support watch")
	// ErrUnknownEvent is returned by Rename for ids missing from the store.
	ErrUnknownEvent = errors.New("app: event not loaded")
)

// Service runs the synchronization operations: each one dispatches a request
// transition, talks to the collection, then dispatches exactly one success or
// failure transition. The store is only changed on success.
//
// Operations are safe to run concurrently. Each applies its result to the
// state current at completion, so two operations on the same id resolve in
// response order.
type Service struct {
	Collection remote.Collection
	Store      *state.Container

	// IDs defaults to event.RandomIDs.
	IDs event.IDGenerator
	// Now defaults to time.Now.
	Now func() time.Time
	// Timeout bounds each operation when positive.
	Timeout time.Duration
	Log     *slog.Logger
}

// New returns a Service over coll with an empty store.
func New(coll remote.Collection, log *slog.Logger) *Service {
	return &Service{
		Collection: coll,
		Store:      state.NewContainer(state.State{}),
		Log:        log,
	}
}

// State returns the current state snapshot.
func (s *Service) State() state.State {
	return s.Store.State()
}

// Events lists the cached events in store order.
func (s *Service) Events() []event.UserEvent {
	return s.Store.State().UserEvents.Events()
}

// Start anchors a recording session at the current time.
func (s *Service) Start() {
	s.dispatch(state.StartRecorder{At: s.now()})
}

// Stop ends the recording session without recording it.
func (s *Service) Stop() {
	s.dispatch(state.StopRecorder{})
}

// Load replaces the cache with the full collection.
func (s *Service) Load(ctx context.Context) error {
	s.dispatch(state.LoadRequest{})
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := await(ctx, s.Collection.Get)
	if err != nil {
		s.dispatch(state.LoadFailure{Error: MsgLoadFailed})
		return s.failed(ctx, "load", err)
	}
	events := make([]event.UserEvent, 0, len(docs))
	for _, doc := range docs {
		var e event.UserEvent
		if err := doc.Decode(&e); err != nil {
			s.log().Warn("skipping undecodable document", slog.String("key", doc.Key), slog.Any("err", err))
			continue
		}
		events = append(events, e)
	}
	s.dispatch(state.LoadSuccess{Events: events})
	return nil
}

// Create records an event from the current session start to now. The start
// is read from the recorder as is: called while idle the event gets an empty
// StartDate.
func (s *Service) Create(ctx context.Context) (event.UserEvent, error) {
	s.dispatch(state.CreateRequest{})
	startDate := s.Store.State().Recorder.DateStart
	return s.create(ctx, startDate)
}

// StopAndCreate ends the running session and records it.
func (s *Service) StopAndCreate(ctx context.Context) (event.UserEvent, error) {
	s.dispatch(state.CreateRequest{})
	startDate := s.Store.State().Recorder.DateStart
	s.dispatch(state.StopRecorder{})
	return s.create(ctx, startDate)
}

func (s *Service) create(ctx context.Context, startDate string) (event.UserEvent, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e := event.New(s.ids().NextID(), startDate, event.FormatTime(s.now()))
	key, err := await(ctx, func(ctx context.Context) (string, error) {
		return s.Collection.Add(ctx, e)
	})
	if err != nil {
		s.dispatch(state.CreateFailure{Error: MsgCreateFailed})
		return event.UserEvent{}, s.failed(ctx, "create", err)
	}
	s.log().Debug("created", slog.Int64("id", e.ID), slog.String("key", key))
	s.dispatch(state.CreateSuccess{Event: e})
	return e, nil
}

// Delete removes every document carrying id, then drops id from the cache.
// Matching nothing is still a success.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.dispatch(state.DeleteRequest{ID: id})
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.forEachMatch(ctx, id, func(ctx context.Context, key string) error {
		return s.Collection.Delete(ctx, key)
	})
	if err != nil {
		s.dispatch(state.DeleteFailure{ID: id, Error: MsgDeleteFailed})
		return s.failed(ctx, "delete", err)
	}
	s.dispatch(state.DeleteSuccess{ID: id})
	return nil
}

// Update writes e's title to every document carrying e.ID and stores e.
func (s *Service) Update(ctx context.Context, e event.UserEvent) error {
	s.dispatch(state.UpdateRequest{ID: e.ID, Title: e.Title})
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fields := map[string]any{"title": e.Title}
	err := s.forEachMatch(ctx, e.ID, func(ctx context.Context, key string) error {
		return s.Collection.Update(ctx, key, fields)
	})
	if err != nil {
		s.dispatch(state.UpdateFailure{ID: e.ID, Error: MsgUpdateFailed})
		return s.failed(ctx, "update", err)
	}
	s.dispatch(state.UpdateSuccess{Event: e})
	return nil
}

// Rename updates the title of a cached event. Nothing is dispatched for ids
// the store does not hold.
func (s *Service) Rename(ctx context.Context, id int64, title string) error {
	e, ok := s.Store.State().UserEvents.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEvent, id)
	}
	e.Title = title
	return s.Update(ctx, e)
}

// forEachMatch applies fn to every document whose id field equals id.
// Documents that disappear between the query and fn count as handled.
func (s *Service) forEachMatch(ctx context.Context, id int64, fn func(ctx context.Context, key string) error) error {
	_, err := await(ctx, func(ctx context.Context) (struct{}, error) {
		docs, err := s.Collection.Where(FieldID, id).Get(ctx)
		if err != nil {
			return struct{}{}, err
		}
		g, gctx := errgroup.WithContext(ctx)
		for _, doc := range docs {
			key := doc.Key
			g.Go(func() error {
				if err := fn(gctx, key); err != nil && !errors.Is(err, remote.ErrNotFound) {
					return err
				}
				return nil
			})
		}
		return struct{}{}, g.Wait()
	})
	return err
}

// await runs fn but gives up as soon as ctx is done, so a collection call
// that ignores its context cannot hold an operation open. A late result is
// discarded.
func await[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v: v, err: err}
	}()
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Watch reloads the cache whenever the collection reports a change. It
// blocks until ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	w, ok := s.Collection.(remote.Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for range changes {
		if err := s.Load(ctx); err != nil {
			s.log().Warn("reload after change failed", slog.Any("err", err))
		}
	}
	return ctx.Err()
}

func (s *Service) dispatch(t state.Transition) {
	s.log().Debug("dispatch", slog.String("kind", string(t.Kind())))
	s.Store.Dispatch(t)
}

func (s *Service) failed(ctx context.Context, op string, err error) error {
	base := ErrRemoteUnavailable
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		base = ErrTimeout
	}
	s.log().Warn("operation failed", slog.String("op", op), slog.Any("err", err))
	return fmt.Errorf("%w: %s: %v", base, op, err)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ids() event.IDGenerator {
	if s.IDs != nil {
		return s.IDs
	}
	return event.RandomIDs{}
}

func (s *Service) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
