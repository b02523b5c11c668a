package commands

import "context"

// CancelDeliveryCommandHandler forwards cancellations to the delivery
// controller. It does not wait for the recovery route to complete.
type CancelDeliveryCommandHandler struct {
	canceler Canceler
}

// NewCancelDeliveryCommandHandler creates the handler.
func NewCancelDeliveryCommandHandler(canceler Canceler) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{canceler: canceler}
}

// Handle sends the cancellation request.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.canceler.RequestCancel(ctx, cmd.Reason())
}
