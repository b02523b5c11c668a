package robot

import "errors"

var (
	// ErrRobotBusy is returned when a delivery cycle or new orders are requested
	// while the robot is not Idle.
	ErrRobotBusy = errors.New("robot is busy with another task")

	// ErrNoActiveDelivery is returned when the queue of a running delivery is
	// modified while no delivery is running.
	ErrNoActiveDelivery = errors.New("no delivery in progress")

	// ErrAlreadyCanceled is returned when a cancellation arrives while a previous
	// one is still being recovered from.
	ErrAlreadyCanceled = errors.New("cancellation already in progress")
)
