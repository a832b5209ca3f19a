package ratefile

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of file events into one reload.
type debouncer struct {
	window   time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

func newDebouncer(window time.Duration, callback func()) *debouncer {
	return &debouncer{window: window, callback: callback}
}

// Trigger restarts the window; the callback fires once the window passes quietly.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
