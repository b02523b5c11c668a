package robot

import (
	"fmt"

	"butler/internal/pkg/errs"
)

// State is the robot's logical state. Exactly one value holds at any instant
// and it changes only inside Session, under its lock.
//
// State transitions:
//
//	Idle ──> Delivery <──> WaitingConfirmation
//	 │          │                 │
//	 │          └──────┬──────────┘
//	 │                 v
//	 └───────────> Canceled
//
//	(every state) ──> Idle   when a cycle or a recovery finishes
//
// WaitingConfirmation is the part of a delivery cycle spent at a stop waiting
// for the operator; for everything else it counts as Delivery.
type State int

const (
	// Unknown represents an invalid or undefined state.
	Unknown State = iota

	// Idle is the initial state and the state every cycle returns to.
	// A delivery cycle may only begin from Idle.
	Idle

	// Delivery means a cycle is running: the robot is travelling to the kitchen,
	// a table, or back home.
	Delivery

	// WaitingConfirmation means a cycle is running and the robot is stopped at a
	// location waiting for a yes/no from the operator.
	WaitingConfirmation

	// Canceled means a cancellation was accepted; a recovery route is pending or
	// in progress and Idle follows once it completes.
	Canceled
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:             "UNKNOWN",
		Idle:                "IDLE",
		Delivery:            "DELIVERY",
		WaitingConfirmation: "WAITING_CONFIRMATION",
		Canceled:            "CANCELED",
	}
}

// States lists every valid state, in declaration order.
func States() []State {
	return []State{Idle, Delivery, WaitingConfirmation, Canceled}
}

// Validate checks if the State value is one of the declared states.
func (s State) Validate() error {
	if s <= Unknown || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the upper-case name of the state, e.g. "WAITING_CONFIRMATION".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalText encodes the state by name for read models.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsDelivering reports whether a delivery cycle is running and not canceled.
func (s State) IsDelivering() bool {
	return s == Delivery || s == WaitingConfirmation
}

// BeginDelivery transitions Idle to Delivery.
//
// Returns:
//   - (Delivery, nil) from Idle
//   - (s, ErrRobotBusy) from any other state
func (s State) BeginDelivery() (State, error) {
	if s != Idle {
		return s, fmt.Errorf("%w: robot is %s", ErrRobotBusy, s)
	}
	return Delivery, nil
}

// AwaitConfirmation transitions Delivery to WaitingConfirmation.
// Any other source state is rejected; in particular a canceled cycle never
// starts waiting for a confirmation.
func (s State) AwaitConfirmation() (State, error) {
	if s != Delivery {
		return s, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to await confirmation", s),
		)
	}
	return WaitingConfirmation, nil
}

// ResumeDelivery transitions WaitingConfirmation back to Delivery. Other states
// are returned unchanged, so a cancellation that arrived during the wait sticks.
func (s State) ResumeDelivery() State {
	if s == WaitingConfirmation {
		return Delivery
	}
	return s
}

// Cancel transitions any valid state to Canceled.
//
// Returns:
//   - (Canceled, nil) from Idle, Delivery or WaitingConfirmation
//   - (Canceled, ErrAlreadyCanceled) from Canceled
func (s State) Cancel() (State, error) {
	if s == Canceled {
		return Canceled, ErrAlreadyCanceled
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return Canceled, nil
}
