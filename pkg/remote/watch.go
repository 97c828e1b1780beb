package remote

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch streams a Change whenever files in the collection directory change,
// including writes from other processes sharing the directory. Bursts are
// coalesced into one Change. The channel closes once ctx is done.
func (d *Disk) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("remote: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "remote: watcher close: %v\n", err)
			}
		})
	}
	if err := watcher.Add(d.dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("remote: watch %s: %w", d.dir, err)
	}

	changes := make(chan Change, 16)

	var (
		sendMu sync.Mutex
		closed bool
	)

	go func() {
		defer func() {
			sendMu.Lock()
			closed = true
			close(changes)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		send := func() {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case changes <- Change{Collection: d.name}:
			default:
				// The consumer reloads everything on each Change, so a
				// pending one already covers this burst.
			}
		}

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(send)
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				throttle.Enqueue(send)
			}
		}
	}()

	return changes, nil
}

// changeThrottle coalesces rapid notifications so listeners reload once per
// burst of filesystem activity instead of on every single write.
type changeThrottle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{delay: delay}
}

func (t *changeThrottle) Enqueue(send func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.mu.Lock()
			t.timer = nil
			t.mu.Unlock()
			send()
		})
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
