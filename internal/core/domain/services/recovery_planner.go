package services

import (
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"
)

// RecoveryPlanner is a domain service deciding where the robot goes after a
// cancellation, from the goal it was travelling to (or waiting at) at that moment.
//
// Routing rules:
//   - kitchen: straight home, nothing was picked up yet
//   - a table: back to the kitchen with the cancel-pending flag set, so the
//     robot returns the order and then goes home
//   - anything else (home, nothing yet): home
//   - the queue was emptied by the operator: home, whatever the goal
//
// Example usage:
//
//	planner := services.NewRecoveryPlanner()
//	plan := planner.Plan("table2", robot.CancelInterrupt)
//	// plan.Route == robot.RecoverKitchen, plan.MarkCancelPending == true
type RecoveryPlanner struct{}

// NewRecoveryPlanner creates a new RecoveryPlanner instance.
func NewRecoveryPlanner() RecoveryPlanner {
	return RecoveryPlanner{}
}

// Plan implements robot.RecoveryPlanner.
func (RecoveryPlanner) Plan(goal string, reason robot.CancelReason) robot.RecoveryPlan {
	if reason == robot.CancelQueueEmptied {
		return robot.RecoveryPlan{Route: robot.RecoverHome}
	}

	switch {
	case goal == waypoint.Kitchen:
		return robot.RecoveryPlan{Route: robot.RecoverHome}
	case waypoint.IsTable(goal):
		return robot.RecoveryPlan{Route: robot.RecoverKitchen, MarkCancelPending: true}
	default:
		return robot.RecoveryPlan{Route: robot.RecoverHome}
	}
}

var _ robot.RecoveryPlanner = RecoveryPlanner{}
