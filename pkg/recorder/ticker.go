package recorder

import (
	"sync"
	"time"
)

// Ticker calls a function on a fixed interval until stopped. It drives
// re-rendering of the elapsed display; the recorder state itself never
// changes on a tick.
type Ticker struct {
	// ctl serializes Start and Stop; mu guards the fields for Running.
	ctl  sync.Mutex
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Start begins calling fn every interval. A running ticker is stopped first,
// so at most one callback loop exists per Ticker.
func (t *Ticker) Start(interval time.Duration, fn func(now time.Time)) {
	t.ctl.Lock()
	defer t.ctl.Unlock()
	t.halt()

	stop := make(chan struct{})
	done := make(chan struct{})
	t.mu.Lock()
	t.stop, t.done = stop, done
	t.mu.Unlock()

	go func() {
		defer close(done)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-tick.C:
				select {
				case <-stop:
					return
				default:
				}
				fn(now)
			}
		}
	}()
}

// Stop cancels the callback loop and waits for it to exit. Stopping an idle
// ticker is a no-op. Stop must not be called from inside fn.
func (t *Ticker) Stop() {
	t.ctl.Lock()
	defer t.ctl.Unlock()
	t.halt()
}

func (t *Ticker) halt() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether a callback loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
