package tracker

import (
	"errors"
	"time"
)

// State is the timer's lifecycle state. There are exactly two: a timer
// is either idle or running, never both and never neither.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns the state name for display.
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

var (
	ErrAlreadyRunning = errors.New("timer already running")
	ErrNotRunning     = errors.New("timer not running")
)

// Interval is one completed stretch of tracked time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration is the interval's length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Timer is a manual start/stop stopwatch modeled as an explicit state
// machine rather than a boolean flag.
type Timer struct {
	state     State
	startedAt time.Time
	now       func() time.Time
}

// NewTimer returns an idle Timer on the real clock.
func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// newTimerAt returns a Timer on an injected clock, for tests.
func newTimerAt(now func() time.Time) *Timer {
	return &Timer{now: now}
}

// State returns the current state.
func (t *Timer) State() State {
	return t.state
}

// Start transitions Idle → Running. Starting a running timer is an
// error, not a restart.
func (t *Timer) Start() error {
	if t.state == StateRunning {
		return ErrAlreadyRunning
	}
	t.state = StateRunning
	t.startedAt = t.now()
	return nil
}

// Stop transitions Running → Idle and returns the completed interval.
func (t *Timer) Stop() (Interval, error) {
	if t.state != StateRunning {
		return Interval{}, ErrNotRunning
	}
	iv := Interval{Start: t.startedAt, End: t.now()}
	t.state = StateIdle
	t.startedAt = time.Time{}
	return iv, nil
}

// Elapsed is the running interval's length so far; zero when idle.
func (t *Timer) Elapsed() time.Duration {
	if t.state != StateRunning {
		return 0
	}
	return t.now().Sub(t.startedAt)
}
