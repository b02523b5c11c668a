// Package commands contains the operations that change the robot's orders and
// delivery: placing orders, modifying the queue of a running delivery and
// cancelling. Every command follows the same pattern: a guarded command value
// built by its constructor, and a handler that validates it and applies it.
package commands

import (
	"context"

	"butler/internal/core/domain/model/robot"
)

// Collaborator interfaces of the command handlers. robot.Session, the waypoint
// registry and the delivery controller satisfy them in production.
type (
	// OrderBook gives atomic access to the order queue.
	OrderBook interface {
		PlaceOrders(tables []string) ([]string, error)
		AddOrders(tables []string) ([]string, error)
		RemoveOrders(tables []string) (removed []string, abandon bool)
	}

	// TableResolver maps operator table identifiers to waypoint names.
	TableResolver interface {
		ResolveTable(id string) (string, bool)
	}

	// CycleStarter starts a delivery cycle. It returns robot.ErrRobotBusy when a
	// cycle is already running.
	CycleStarter interface {
		StartCycle(ctx context.Context) error
	}

	// Canceler delivers a cancellation request to the delivery controller.
	Canceler interface {
		RequestCancel(ctx context.Context, reason robot.CancelReason) error
	}
)
