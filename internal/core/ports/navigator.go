// Package ports defines the interfaces the delivery core consumes from the
// outside world: the navigation stack, the operator console and metrics.
// Adapters under internal/adapters implement them.
package ports

import (
	"context"

	"butler/internal/core/domain/model/kernel"
)

// GoalStatus is the terminal status of one navigation goal.
type GoalStatus int

const (
	// GoalUnknown is the zero value and never a valid result.
	GoalUnknown GoalStatus = iota
	// GoalSucceeded means the robot reached the pose.
	GoalSucceeded
	// GoalFailed means the navigation stack gave up (unreachable, aborted).
	GoalFailed
	// GoalCanceled means the goal was preempted by CancelCurrentGoal or by
	// context cancellation. Callers treat it as a failure.
	GoalCanceled
)

func (s GoalStatus) String() string {
	switch s {
	case GoalSucceeded:
		return "SUCCEEDED"
	case GoalFailed:
		return "FAILED"
	case GoalCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Navigator drives the robot to a pose.
//
// Every MoveTo call is an independent goal session: a cancellation of an
// earlier goal never affects a later call.
type Navigator interface {
	// MoveTo dispatches a goal and blocks until it reaches a terminal status or
	// ctx is done (then GoalCanceled is returned). The error is reserved for
	// faults that prevented the goal from being dispatched at all.
	MoveTo(ctx context.Context, pose kernel.Pose) (GoalStatus, error)

	// CancelCurrentGoal asks the navigation stack to abort the goal in flight,
	// if any. It does not wait for the abort to be observed.
	CancelCurrentGoal()
}
