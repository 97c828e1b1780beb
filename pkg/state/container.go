package state

import (
	"sync"
)

// Listener is told about every applied transition together with the State it
// produced.
type Listener func(State, Transition)

// Container owns the current State. Dispatches are serialized: each one is
// reduced and fanned out to listeners before the next is applied, so
// listeners observe transitions in application order.
//
// Listeners run on the dispatching goroutine and must not call Dispatch
// themselves; hand off to a channel instead (see Changes).
type Container struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewContainer returns a container seeded with initial.
func NewContainer(initial State) *Container {
	return &Container{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// State returns the current value. Callers must treat it as read only.
func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatch applies t and notifies listeners. It returns the resulting State.
func (c *Container) Dispatch(t Transition) State {
	if t == nil {
		return c.State()
	}
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	next := Reduce(c.state, t)
	c.state = next
	listeners := make([]Listener, 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if l, ok := c.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(next, t)
	}
	return next
}

// Subscribe registers l and returns a function removing it again.
func (c *Container) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Change is a notification delivered through Changes.
type Change struct {
	State      State
	Transition Transition
}

// Changes streams notifications on a buffered channel until unsubscribe is
// called. When the consumer falls behind the oldest queued notifications are
// dropped, so the last Change in the channel always carries the current State
// and readers that re-render from it lose nothing.
func (c *Container) Changes(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan Change, buffer)
	var (
		mu     sync.Mutex
		closed bool
	)
	unsubscribe := c.Subscribe(func(s State, t Transition) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		change := Change{State: s, Transition: t}
		for {
			select {
			case ch <- change:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, func() {
		unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}
}
