package commands

import (
	"context"
	"errors"

	"butler/internal/core/domain/model/robot"
)

// PlaceOrdersCommandHandler queues a batch of orders and starts a delivery
// cycle for them.
//
// Business rules:
//   - Unknown tables are dropped from the batch silently
//   - A batch with no known table changes nothing (ErrNoValidTables)
//   - Orders are only accepted while the robot is idle (robot.ErrRobotBusy)
//   - If another cycle wins the start race, the orders stay queued and that
//     cycle serves them
type PlaceOrdersCommandHandler struct {
	orders   OrderBook
	resolver TableResolver
	starter  CycleStarter
}

// NewPlaceOrdersCommandHandler creates the handler.
func NewPlaceOrdersCommandHandler(
	orders OrderBook,
	resolver TableResolver,
	starter CycleStarter,
) PlaceOrdersCommandHandler {
	return PlaceOrdersCommandHandler{
		orders:   orders,
		resolver: resolver,
		starter:  starter,
	}
}

// Handle validates the batch, queues the known tables and starts a cycle.
//
// Returns:
//   - []string: waypoint names of the accepted tables, in entry order
//   - error: ErrNoValidTables, robot.ErrRobotBusy or a start failure
func (h PlaceOrdersCommandHandler) Handle(ctx context.Context, cmd PlaceOrdersCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tables := resolveTables(h.resolver, cmd.TableIDs())
	if len(tables) == 0 {
		return nil, ErrNoValidTables
	}

	if _, err := h.orders.PlaceOrders(tables); err != nil {
		return nil, err
	}

	if err := h.starter.StartCycle(ctx); err != nil && !errors.Is(err, robot.ErrRobotBusy) {
		return nil, err
	}

	return tables, nil
}
