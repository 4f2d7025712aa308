package checkout

import "errors"

// ErrInProgress is returned when an action is triggered while the same
// session already has one in flight.
var ErrInProgress = errors.New("checkout: action already in progress")

// FlowState tracks one user-initiated async action (order placement, payment
// submission) from trigger to terminal outcome.
type FlowState uint8

const (
	FlowIdle FlowState = iota
	FlowConfirming
	FlowInFlight
	FlowSucceeded
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowConfirming:
		return "confirming"
	case FlowInFlight:
		return "in_flight"
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Flow is a short-lived state machine for one async action. It replaces the
// ad hoc processing flag: every exit path must drive it to a terminal state,
// so a failure can never leave the action stuck "processing".
type Flow struct {
	state FlowState
}

func NewFlow() *Flow { return &Flow{state: FlowIdle} }

func (f *Flow) State() FlowState { return f.state }

// Confirm moves Idle to Confirming (the user is looking at a confirmation
// popup; nothing is in flight yet).
func (f *Flow) Confirm() error {
	if f.state != FlowIdle {
		return ErrInProgress
	}
	f.state = FlowConfirming
	return nil
}

// Start moves the flow in flight. Re-entrant triggers are rejected.
func (f *Flow) Start() error {
	switch f.state {
	case FlowIdle, FlowConfirming:
		f.state = FlowInFlight
		return nil
	default:
		return ErrInProgress
	}
}

// Finish records the outcome of an in-flight action.
func (f *Flow) Finish(err error) {
	if err != nil {
		f.state = FlowFailed
		return
	}
	f.state = FlowSucceeded
}

// Terminal reports whether the flow has reached an outcome.
func (f *Flow) Terminal() bool {
	return f.state == FlowSucceeded || f.state == FlowFailed
}
