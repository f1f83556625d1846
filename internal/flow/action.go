// Package flow implements the simulated async action used by every screen
// that fakes network or hardware latency: payments, biometric sync, exam
// creation, messaging and login.
//
// An Action moves Idle -> Processing -> Succeeded -> Idle, or
// Idle -> Processing -> Failed. Processing always finishes before Succeeded
// or Failed can be observed, and a new Trigger is refused while one is in
// flight.
package flow

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Status is the observable state of an Action
type Status int

const (
	Idle Status = iota
	Processing
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// MarshalText lets views serialize the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Idle, Processing, Succeeded, Failed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown action status %q", text)
}

var (
	ErrBusy          = errors.New("action already in progress")
	ErrGuardRejected = errors.New("action preconditions not met")
	ErrClosed        = errors.New("action closed")
)

// Scheduler runs f after d. It mirrors time.AfterFunc and lets tests drive
// time by hand.
type Scheduler func(d time.Duration, f func())

// RealScheduler schedules on the wall clock
func RealScheduler(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Options configures an Action
type Options struct {
	// Processing is the simulated latency before the effect runs
	Processing time.Duration
	// Display is how long Succeeded stays visible before reverting to Idle
	Display time.Duration
	// Scheduler defaults to RealScheduler
	Scheduler Scheduler
}

// Snapshot is what a view needs to render the action
type Snapshot struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Action is a reusable Idle/Processing/Succeeded/Failed state machine
type Action struct {
	mu       sync.Mutex
	opts     Options
	status   Status
	err      error
	closed   bool
	attempt  uint64
	onChange func(Status)
}

// New creates an idle action
func New(opts Options) *Action {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler
	}
	return &Action{opts: opts}
}

// OnChange registers a callback invoked (outside the lock) after every
// status change. Used for logging.
func (a *Action) OnChange(fn func(Status)) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// Trigger starts the action. guard is evaluated first; a false result leaves
// the action untouched. effect runs once after the processing delay; a nil
// return moves to Succeeded, an error to Failed. Either may be nil.
func (a *Action) Trigger(guard func() bool, effect func() error) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.status == Processing || a.status == Succeeded {
		a.mu.Unlock()
		return ErrBusy
	}
	if guard != nil && !guard() {
		a.mu.Unlock()
		return ErrGuardRejected
	}
	a.attempt++
	attempt := a.attempt
	a.status = Processing
	a.err = nil
	notify := a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(Processing)
	}

	a.opts.Scheduler(a.opts.Processing, func() { a.complete(attempt, effect) })
	return nil
}

func (a *Action) complete(attempt uint64, effect func() error) {
	a.mu.Lock()
	if a.closed || attempt != a.attempt || a.status != Processing {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	var err error
	if effect != nil {
		err = effect()
	}

	a.mu.Lock()
	if a.closed || attempt != a.attempt {
		a.mu.Unlock()
		return
	}
	next := Succeeded
	if err != nil {
		next = Failed
		a.err = err
	}
	a.status = next
	notify := a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(next)
	}

	if next == Succeeded {
		a.opts.Scheduler(a.opts.Display, func() { a.revert(attempt) })
	}
}

func (a *Action) revert(attempt uint64) {
	a.mu.Lock()
	if a.closed || attempt != a.attempt || a.status != Succeeded {
		a.mu.Unlock()
		return
	}
	a.status = Idle
	notify := a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(Idle)
	}
}

// Reset clears a Failed state back to Idle. Other states are left alone.
func (a *Action) Reset() {
	a.mu.Lock()
	if a.status != Failed {
		a.mu.Unlock()
		return
	}
	a.status = Idle
	a.err = nil
	notify := a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(Idle)
	}
}

// Close tears the action down. Timers that are still pending will fire but
// no longer run effects or change state.
func (a *Action) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

// Status returns the current status
func (a *Action) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Err returns the failure of the last attempt, if it failed
func (a *Action) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Busy reports whether controls that trigger the action should be disabled
func (a *Action) Busy() bool {
	s := a.Status()
	return s == Processing
}

// Snapshot returns the view state
func (a *Action) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := Snapshot{Status: a.status}
	if a.err != nil {
		snap.Error = a.err.Error()
	}
	return snap
}
