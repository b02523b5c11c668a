package commands

import (
	"context"

	"butler/internal/core/domain/model/robot"
)

// ModifyOrdersResult reports what a modification changed.
type ModifyOrdersResult struct {
	Action ModifyAction
	// Tables are the destinations actually added or removed.
	Tables []string
	// Abandoned is true when the removal emptied the queue before any table was
	// served and the delivery was cancelled with a forced return home.
	Abandoned bool
}

// ModifyOrdersCommandHandler applies queue modifications during a delivery.
//
// Business rules:
//   - Added tables must exist and not be queued already; they join the tail
//   - Removed tables must be queued; a removed table is never served
//   - Removing the last queued table before serving started abandons the
//     cycle: the kitchen trip is cancelled and the robot returns home
type ModifyOrdersCommandHandler struct {
	orders   OrderBook
	resolver TableResolver
	canceler Canceler
}

// NewModifyOrdersCommandHandler creates the handler.
func NewModifyOrdersCommandHandler(
	orders OrderBook,
	resolver TableResolver,
	canceler Canceler,
) ModifyOrdersCommandHandler {
	return ModifyOrdersCommandHandler{
		orders:   orders,
		resolver: resolver,
		canceler: canceler,
	}
}

// Handle applies the modification.
//
// Returns:
//   - ModifyOrdersResult: what changed
//   - error: ErrNothingToAdd, ErrNothingToRemove, robot.ErrNoActiveDelivery,
//     or a failure to deliver the cancellation
func (h ModifyOrdersCommandHandler) Handle(ctx context.Context, cmd ModifyOrdersCommand) (ModifyOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ModifyOrdersResult{}, err
	}

	tables := resolveTables(h.resolver, cmd.TableIDs())
	result := ModifyOrdersResult{Action: cmd.Action()}

	if cmd.Action() == ActionAdd {
		if len(tables) == 0 {
			return result, ErrNothingToAdd
		}
		added, err := h.orders.AddOrders(tables)
		if err != nil {
			return result, err
		}
		if len(added) == 0 {
			return result, ErrNothingToAdd
		}
		result.Tables = added
		return result, nil
	}

	if len(tables) == 0 {
		return result, ErrNothingToRemove
	}
	removed, abandon := h.orders.RemoveOrders(tables)
	if len(removed) == 0 {
		return result, ErrNothingToRemove
	}
	result.Tables = removed

	if abandon {
		if err := h.canceler.RequestCancel(ctx, robot.CancelQueueEmptied); err != nil {
			return result, err
		}
		result.Abandoned = true
	}

	return result, nil
}
