// Package timer implements the countdown state machine driving the study
// dashboard. The machine is pure and synchronous; wall-clock pacing of ticks
// belongs to the caller.
package timer

import (
	"fmt"
	"time"
)

// State is the lifecycle phase of the countdown.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	// StateCompleted is transient: it is entered by the tick that reaches
	// zero, reported once, and collapses to Idle on the next command or tick.
	StateCompleted State = "completed"
)

// Snapshot is a read-only view of the countdown for rendering.
type Snapshot struct {
	State            State
	RemainingSeconds int
	TotalSeconds     int
	SessionType      string
	StartedAt        time.Time
}

// Running reports whether the countdown is actively decrementing.
func (s Snapshot) Running() bool {
	return s.State == StateRunning
}

// Progress returns elapsed progress in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	return float64(s.TotalSeconds-s.RemainingSeconds) / float64(s.TotalSeconds)
}

// Timer is a countdown over whole seconds.
//
// Invariants: remaining <= total, and State is Running only while
// remaining > 0. The zero value is an Idle timer.
type Timer struct {
	state       State
	remaining   int
	total       int
	sessionType string
	startedAt   time.Time
}

// New returns an Idle timer.
func New() *Timer {
	return &Timer{state: StateIdle}
}

// Start arms the countdown for the given duration in seconds. A non-positive
// duration is silently ignored. Starting over a running or paused countdown
// replaces it.
func (t *Timer) Start(seconds int, sessionType string) {
	if seconds <= 0 {
		return
	}
	t.state = StateRunning
	t.remaining = seconds
	t.total = seconds
	t.sessionType = sessionType
	t.startedAt = time.Now()
}

// Pause suspends a running countdown. No-op in any other state.
func (t *Timer) Pause() {
	if t.state == StateRunning {
		t.state = StatePaused
	}
}

// Resume continues a paused countdown with time remaining. No-op otherwise.
func (t *Timer) Resume() {
	if t.state == StatePaused && t.remaining > 0 {
		t.state = StateRunning
	}
}

// Reset returns the timer to Idle from any state.
func (t *Timer) Reset() {
	t.state = StateIdle
	t.remaining = 0
	t.total = 0
	t.sessionType = ""
	t.startedAt = time.Time{}
}

// Tick decrements a running countdown by one second. It reports completed
// exactly once, on the tick that reaches zero.
func (t *Timer) Tick() (completed bool) {
	if t.state == StateCompleted {
		t.Reset()
		return false
	}
	if t.state != StateRunning {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = StateCompleted
		return true
	}
	return false
}

// ElapsedSeconds returns how many seconds of the armed duration have passed.
func (t *Timer) ElapsedSeconds() int {
	return t.total - t.remaining
}

// Snapshot captures the current countdown for rendering. Observing a
// Completed snapshot collapses the state to Idle so the completion signal
// cannot re-trigger on subsequent redraws.
func (t *Timer) Snapshot() Snapshot {
	snap := Snapshot{
		State:            t.state,
		RemainingSeconds: t.remaining,
		TotalSeconds:     t.total,
		SessionType:      t.sessionType,
		StartedAt:        t.startedAt,
	}
	if t.state == StateCompleted {
		t.Reset()
	}
	return snap
}

// FormatClock renders a second count as HH:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
