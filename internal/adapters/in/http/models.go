package http

import "butler/internal/core/domain/model/kernel"

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Tables is a list of table identifiers ("1", "2") on input and of waypoint
// names ("table1") on output.
type Tables struct {
	Tables []string `json:"tables"`
}

// RobotStatus is the response of GET /api/v1/robot.
type RobotStatus struct {
	State         string      `json:"state"`
	Goal          string      `json:"goal"`
	Queue         []string    `json:"queue"`
	CycleID       kernel.UUID `json:"cycle_id"`
	CancelPending bool        `json:"cancel_pending"`
	Serving       bool        `json:"serving"`
}
