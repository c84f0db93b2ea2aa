package watch

import "time"

// debouncer fires once after a burst of triggers has been quiet for delay.
// It is owned by a single goroutine.
type debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	pending bool
}

func newDebouncer(delay time.Duration) *debouncer {
	t := time.NewTimer(delay)
	t.Stop()
	return &debouncer{delay: delay, timer: t}
}

// Trigger (re)starts the quiet period.
func (d *debouncer) Trigger() {
	d.pending = true
	d.timer.Reset(d.delay)
}

// C delivers when the quiet period has elapsed.
func (d *debouncer) C() <-chan time.Time { return d.timer.C }

// Fired clears the pending state after a value was received from C.
func (d *debouncer) Fired() bool {
	was := d.pending
	d.pending = false
	return was
}

func (d *debouncer) Stop() {
	d.timer.Stop()
	d.pending = false
}
