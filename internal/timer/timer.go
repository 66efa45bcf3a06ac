// Package timer provides duration timers advanced by elapsed wall time.
package timer

import "time"

// Mode selects what happens when a timer reaches its duration.
type Mode int

const (
	// Once stops at the duration and stays finished.
	Once Mode = iota
	// Repeating wraps back to zero, keeping any overshoot, and fires again every cycle.
	Repeating
)

// Timer counts elapsed time towards a duration. It never reads the clock: callers
// pass the frame delta to Tick, which keeps timers frame-rate independent and testable.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     Mode
	finished bool // a Once timer has run out
	fired    int  // cycles completed during the last Tick
}

// New creates a timer that has not started.
func New(duration time.Duration, mode Mode) Timer {
	return Timer{duration: duration, mode: mode}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) {
	if t.mode == Once && t.finished {
		t.fired = 0
		return
	}
	if dt < 0 {
		dt = 0
	}

	t.elapsed += dt
	if t.elapsed < t.duration {
		t.fired = 0
		return
	}

	switch t.mode {
	case Repeating:
		if t.duration > 0 {
			t.fired = int(t.elapsed / t.duration)
			t.elapsed %= t.duration
		} else {
			t.fired = 1
			t.elapsed = 0
		}
	default:
		t.fired = 1
		t.elapsed = t.duration
		t.finished = true
	}
}

// JustFinished reports whether the last Tick completed at least one cycle.
func (t *Timer) JustFinished() bool {
	return t.fired > 0
}

// TimesFinishedThisTick returns how many cycles the last Tick completed.
func (t *Timer) TimesFinishedThisTick() int {
	return t.fired
}

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	f := float64(t.elapsed) / float64(t.duration)
	if f > 1 {
		return 1
	}
	return f
}

// Elapsed returns the time counted in the current cycle.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the cycle length.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.fired = 0
}
