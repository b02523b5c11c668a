package commands

import (
	"errors"
	"fmt"

	"butler/internal/core/domain/model/robot"
	"butler/internal/pkg/errs"
	"butler/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand asks the robot to stop what it is doing and take the
// recovery route for its current goal.
type CancelDeliveryCommand struct {
	reason robot.CancelReason

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates the command for an interrupt or operator
// request. robot.CancelQueueEmptied is raised internally and is rejected here.
func NewCancelDeliveryCommand(reason robot.CancelReason) (CancelDeliveryCommand, error) {
	if reason != robot.CancelInterrupt && reason != robot.CancelOperator {
		return CancelDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"reason", fmt.Errorf("%q cannot be requested directly", reason))
	}

	return CancelDeliveryCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// Reason returns where the cancellation came from.
func (c CancelDeliveryCommand) Reason() robot.CancelReason {
	return c.reason
}
