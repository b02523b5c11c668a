package delivery

import (
	"context"
	"log/slog"

	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"
	"butler/internal/core/ports"
)

// settle runs pending recovery routes until the session goes Idle.
func (c *Controller) settle(ctx context.Context, logger *slog.Logger) {
	for r := c.session.Complete(); r != robot.RecoverNone; r = c.session.Complete() {
		switch r {
		case robot.RecoverKitchen:
			c.returnToKitchen(ctx, logger)
		case robot.RecoverHome:
			c.returnToHome(ctx, logger)
		}
	}
}

// returnToKitchen is a forced move to the kitchen. When it succeeds and a
// cancellation en route to a table is pending, the robot continues home.
func (c *Controller) returnToKitchen(ctx context.Context, logger *slog.Logger) {
	logger.InfoContext(ctx, "Returning to kitchen..")
	if c.moveTo(ctx, logger, waypoint.Kitchen) && c.session.TakeCancelPending() {
		c.returnToHome(ctx, logger)
	}
}

// returnToHome is a forced move home.
func (c *Controller) returnToHome(ctx context.Context, logger *slog.Logger) {
	logger.InfoContext(ctx, "Returning to home..")
	c.moveTo(ctx, logger, waypoint.Home)
}

// moveTo records name as the current goal and drives there. It reports
// whether the goal succeeded.
func (c *Controller) moveTo(ctx context.Context, logger *slog.Logger, name string) bool {
	if ctx.Err() != nil {
		return false
	}

	wp, err := c.registry.Get(name)
	if err != nil {
		logger.ErrorContext(ctx, "Unknown waypoint", "target", name, "error", err)
		return false
	}

	c.session.SetGoal(name)
	logger.InfoContext(ctx, "Moving", "target", name, "pose", wp.Pose().String())

	status, err := c.navigator.MoveTo(ctx, wp.Pose())
	if err != nil {
		logger.ErrorContext(ctx, "Navigation goal was not dispatched", "target", name, "error", err)
		status = ports.GoalFailed
	}
	c.recorder.GoalFinished(name, status)

	if status != ports.GoalSucceeded {
		logger.InfoContext(ctx, "Failed to reach goal", "target", name, "status", status.String())
		return false
	}
	logger.InfoContext(ctx, "Goal reached successfully", "target", name)
	return true
}
