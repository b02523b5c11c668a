package delivery

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"
	"butler/internal/core/ports"
)

// ErrControllerStopped is returned by StartCycle after Run has returned.
var ErrControllerStopped = errors.New("delivery controller is stopped")

// Cycle outcomes reported to the recorder.
const (
	outcomeCompleted = "completed"
	outcomeAborted   = "aborted"
	outcomeDeclined  = "declined"
	outcomeTimedOut  = "timed_out"
	outcomeCanceled  = "canceled"
)

// Controller is the delivery state machine.
//
// A cycle goes to the kitchen, waits for the modification window to close,
// asks for confirmation, then serves the queued tables in FIFO order with a
// confirmation at each, and returns home. A failed kitchen trip aborts the
// cycle; a failed table trip skips that table. A decline or timeout at the
// kitchen sends the robot home and ends the cycle. A timeout at a table sends
// the robot to the kitchen and home before the next table; a decline moves on.
//
// The modification listener is joined on arrival at the kitchen, before the
// kitchen confirmation, so the console has a single owner at any time.
//
// A cancellation preempts the goal in flight through the cycle context only,
// never through Navigator.CancelCurrentGoal: the recovery move that follows
// must not be hit by a cancel the navigator applies late. CancelCurrentGoal
// is issued on shutdown, when no further goal is dispatched.
type Controller struct {
	session   *robot.Session
	registry  *waypoint.Registry
	navigator ports.Navigator
	planner   robot.RecoveryPlanner
	gate      *Gate
	listener  *ModificationListener
	cancels   *CancelChannel
	recorder  ports.DeliveryRecorder
	logger    *slog.Logger

	// lifetime bounds every cycle and recovery; Run cancels it on return.
	lifetime context.Context
	stop     context.CancelFunc

	// mu orders wg.Add against shutdown; stopped is set once Run returns.
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewController creates the controller. Call Run to start applying
// cancellation requests.
func NewController(
	session *robot.Session,
	registry *waypoint.Registry,
	navigator ports.Navigator,
	planner robot.RecoveryPlanner,
	gate *Gate,
	listener *ModificationListener,
	cancels *CancelChannel,
	recorder ports.DeliveryRecorder,
	logger *slog.Logger,
) *Controller {
	lifetime, stop := context.WithCancel(context.Background())
	return &Controller{
		session:   session,
		registry:  registry,
		navigator: navigator,
		planner:   planner,
		gate:      gate,
		listener:  listener,
		cancels:   cancels,
		recorder:  recorder,
		logger:    logger.With("component", "delivery_controller"),
		lifetime:  lifetime,
		stop:      stop,
	}
}

// StartCycle begins a delivery cycle if the robot is Idle and returns without
// waiting for it. The cycle is not bound to ctx; it ends on its own, on
// cancellation, or when Run returns.
//
// Returns robot.ErrRobotBusy when a cycle or a recovery is already running.
func (c *Controller) StartCycle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrControllerStopped
	}

	cycleCtx, abort := context.WithCancel(c.lifetime)
	cycleID, err := c.session.TryBeginDelivery(abort)
	if err != nil {
		abort()
		c.logger.InfoContext(ctx, "Robot is busy with another task")
		return err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.runCycle(cycleCtx, abort, cycleID)
	}()
	return nil
}

// spawn runs fn on a tracked goroutine unless the controller has stopped.
func (c *Controller) spawn(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// shutdown aborts running work and halts the robot.
func (c *Controller) shutdown() {
	c.mu.Lock()
	c.stopped = true
	c.stop()
	c.mu.Unlock()

	c.navigator.CancelCurrentGoal()
	c.wg.Wait()
}

// Run applies cancellation requests until ctx is done. On return every cycle
// is aborted and waited for.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Delivery controller started")
	defer func() {
		c.shutdown()
		c.logger.InfoContext(context.Background(), "Delivery controller stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-c.cancels.Requests():
			c.handleCancel(ctx, req)
		}
	}
}

// Wait blocks until running cycles and recoveries have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) handleCancel(ctx context.Context, req CancelRequest) {
	c.recorder.CancelRequested(req.Reason)

	outcome, err := c.session.Cancel(c.planner, req.Reason)
	if errors.Is(err, robot.ErrAlreadyCanceled) {
		c.logger.InfoContext(ctx, "Cancellation already in progress", "reason", req.Reason)
		return
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "Cancellation rejected", "reason", req.Reason, "error", err)
		return
	}

	switch {
	case req.Reason == robot.CancelQueueEmptied:
		c.logger.InfoContext(ctx, "Order queue emptied, canceling kitchen trip and returning home")
	case outcome.Plan.Route == robot.RecoverKitchen:
		c.logger.InfoContext(ctx, "Task canceled while going to a table. Returning to kitchen first",
			"goal", outcome.Goal, "reason", req.Reason)
	case outcome.Goal == waypoint.Kitchen:
		c.logger.InfoContext(ctx, "Task canceled while going to the kitchen. Returning home",
			"reason", req.Reason)
	default:
		c.logger.InfoContext(ctx, "Task canceled, returning home", "goal", outcome.Goal, "reason", req.Reason)
	}

	// An active cycle was aborted by Session.Cancel and runs the route itself.
	if !outcome.CycleActive {
		c.spawn(func() { c.settle(c.lifetime, c.logger) })
	}
}

func (c *Controller) runCycle(ctx context.Context, abort context.CancelFunc, cycleID kernel.UUID) {
	logger := c.logger.With("cycle_id", cycleID.String())
	logger.InfoContext(ctx, "Delivery cycle started", "queue", c.session.Snapshot().Queue)

	listening := make(chan struct{})
	go func() {
		defer close(listening)
		c.listener.Listen(ctx)
	}()

	outcome := c.deliver(ctx, logger, listening)

	abort()
	<-listening
	c.settle(c.lifetime, logger)

	c.recorder.CycleFinished(outcome)
	c.recorder.ObserveSession(c.session.Snapshot())
	logger.InfoContext(c.lifetime, "Delivery cycle finished", "outcome", outcome)
}

func (c *Controller) deliver(ctx context.Context, logger *slog.Logger, listening <-chan struct{}) string {
	if !c.moveTo(ctx, logger, waypoint.Kitchen) {
		if c.session.IsCanceled() {
			return outcomeCanceled
		}
		logger.InfoContext(ctx, "Failed to reach the kitchen, aborting task")
		return outcomeAborted
	}

	// Modifications made on the way are settled before the kitchen confirmation.
	select {
	case <-listening:
	case <-ctx.Done():
		return outcomeCanceled
	}

	switch c.gate.Await(ctx, waypoint.Kitchen) {
	case Confirmed:
	case Declined:
		logger.InfoContext(ctx, "Confirmation declined at the kitchen, returning to home")
		c.returnToHome(ctx, logger)
		return c.unlessCanceled(outcomeDeclined)
	case TimedOut:
		logger.InfoContext(ctx, "No confirmation at the kitchen, returning to home")
		c.returnToHome(ctx, logger)
		return c.unlessCanceled(outcomeTimedOut)
	default:
		return outcomeCanceled
	}

	c.session.BeginServing()
	for table, ok := c.session.PopNext(); ok; table, ok = c.session.PopNext() {
		if !c.moveTo(ctx, logger, table) {
			logger.InfoContext(ctx, "Failed to reach table, skipping", "table", table)
			continue
		}

		switch c.gate.Await(ctx, table) {
		case Declined:
			logger.InfoContext(ctx, "No confirmation at table, moving to the next table", "table", table)
		case TimedOut:
			logger.InfoContext(ctx, "Returning to kitchen and home due to lack of confirmation", "table", table)
			c.returnToKitchen(ctx, logger)
			c.returnToHome(ctx, logger)
		}
	}

	if c.session.IsCanceled() {
		return outcomeCanceled
	}
	c.returnToHome(ctx, logger)
	return c.unlessCanceled(outcomeCompleted)
}

func (c *Controller) unlessCanceled(outcome string) string {
	if c.session.IsCanceled() {
		return outcomeCanceled
	}
	return outcome
}
