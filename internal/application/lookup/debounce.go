// Package lookup hosts the debounced CEP auto-fill trigger. Rapid typing
// into the postal-code field must collapse into a single request fired only
// after the input has been quiet for the configured window.
package lookup

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period before a lookup fires.
const DefaultWindow = 400 * time.Millisecond

// Debouncer coalesces a burst of input values into one callback invocation
// carrying the last value seen. Safe for concurrent use.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	last   string
	fire   func(value string)
}

// NewDebouncer creates a debouncer that calls fire with the final value of
// each input burst. A non-positive window falls back to DefaultWindow.
func NewDebouncer(window time.Duration, fire func(value string)) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, fire: fire}
}

// Input records a new value and restarts the quiet window.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		value := d.last
		d.mu.Unlock()
		d.fire(value)
	})
}

// Stop cancels any pending invocation. A burst already past its window may
// still fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
