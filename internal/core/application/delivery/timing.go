package delivery

import "time"

// Timing holds the operator-facing time windows of a delivery cycle.
type Timing struct {
	// ConfirmTimeout bounds the whole confirmation wait at one stop.
	ConfirmTimeout time.Duration
	// ConfirmAttemptTimeout bounds each yes/no prompt within ConfirmTimeout.
	ConfirmAttemptTimeout time.Duration
	// ModifyWindow bounds each prompt of the queue modification listener.
	ModifyWindow time.Duration
	// IntakePollInterval is how often the intake loop re-checks for Idle.
	IntakePollInterval time.Duration
}

// DefaultTiming returns the windows used on the floor.
func DefaultTiming() Timing {
	return Timing{
		ConfirmTimeout:        30 * time.Second,
		ConfirmAttemptTimeout: 5 * time.Second,
		ModifyWindow:          8 * time.Second,
		IntakePollInterval:    time.Second,
	}
}
