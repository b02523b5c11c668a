package ports

import "butler/internal/core/domain/model/robot"

// DeliveryRecorder receives delivery events for metrics.
type DeliveryRecorder interface {
	CycleFinished(outcome string)
	GoalFinished(target string, status GoalStatus)
	ConfirmationFinished(location string, outcome string)
	CancelRequested(reason robot.CancelReason)
	ObserveSession(snapshot robot.Snapshot)
}
