package robot

// Recovery is a forced route the robot takes without asking for confirmation.
type Recovery int

const (
	// RecoverNone means no forced route is pending.
	RecoverNone Recovery = iota
	// RecoverHome sends the robot straight home.
	RecoverHome
	// RecoverKitchen sends the robot to the kitchen. When the cancel-pending flag
	// is set and the kitchen is reached, the robot continues home.
	RecoverKitchen
)

func (r Recovery) String() string {
	switch r {
	case RecoverHome:
		return "home"
	case RecoverKitchen:
		return "kitchen"
	default:
		return "none"
	}
}

// CancelReason says where a cancellation came from.
type CancelReason string

const (
	// CancelInterrupt is the process interrupt signal (Ctrl+C).
	CancelInterrupt CancelReason = "interrupt"
	// CancelOperator is an explicit cancel request from the operator API.
	CancelOperator CancelReason = "operator"
	// CancelQueueEmptied is raised when the operator removes the last queued
	// destination before the robot has started serving tables.
	CancelQueueEmptied CancelReason = "queue_emptied"
)

// RecoveryPlan is the routing decision taken when a cancellation is accepted.
type RecoveryPlan struct {
	Route Recovery
	// MarkCancelPending requests the extra home leg after the kitchen is reached.
	MarkCancelPending bool
}

// RecoveryPlanner decides the recovery route from the goal the robot was
// travelling to, or waiting at, when the cancellation arrived.
type RecoveryPlanner interface {
	Plan(goal string, reason CancelReason) RecoveryPlan
}

// CancelOutcome describes what Session.Cancel did.
type CancelOutcome struct {
	Previous State
	Goal     string
	Plan     RecoveryPlan
	// CycleActive is true when a delivery cycle owns the recovery. Otherwise
	// the caller must run the recovery itself through Session.Complete.
	CycleActive bool
}
