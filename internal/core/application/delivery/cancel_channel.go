package delivery

import (
	"context"
	"errors"
	"time"

	"butler/internal/core/domain/model/robot"
)

// ErrCancelBacklogFull is returned when cancellation requests arrive faster
// than the controller applies them.
var ErrCancelBacklogFull = errors.New("cancellation backlog is full")

// CancelRequest asks the controller to cancel whatever the robot is doing.
type CancelRequest struct {
	Reason      robot.CancelReason
	RequestedAt time.Time
}

// CancelChannel is the buffered path from cancellation sources to
// Controller.Run. Sending never blocks, so it is safe from signal handlers.
type CancelChannel struct {
	requests chan CancelRequest
}

// NewCancelChannel creates a channel holding up to size pending requests.
func NewCancelChannel(size int) *CancelChannel {
	if size < 1 {
		size = 1
	}
	return &CancelChannel{requests: make(chan CancelRequest, size)}
}

// RequestCancel enqueues a request without waiting for it to be applied.
func (c *CancelChannel) RequestCancel(ctx context.Context, reason robot.CancelReason) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case c.requests <- CancelRequest{Reason: reason, RequestedAt: time.Now()}:
		return nil
	default:
		return ErrCancelBacklogFull
	}
}

// Requests returns the receive side, drained by the controller.
func (c *CancelChannel) Requests() <-chan CancelRequest {
	return c.requests
}
