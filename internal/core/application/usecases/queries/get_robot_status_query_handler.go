package queries

import (
	"context"

	"butler/internal/core/domain/model/robot"
)

// StatusSource provides consistent snapshots of the robot session.
type StatusSource interface {
	Snapshot() robot.Snapshot
}

// GetRobotStatusQueryHandler reads the robot status from the live session.
// The snapshot is taken under the session lock, so state, goal and queue are
// always mutually consistent.
type GetRobotStatusQueryHandler struct {
	source StatusSource
}

// NewGetRobotStatusQueryHandler creates the handler.
func NewGetRobotStatusQueryHandler(source StatusSource) GetRobotStatusQueryHandler {
	return GetRobotStatusQueryHandler{source: source}
}

// Handle executes the query.
func (h GetRobotStatusQueryHandler) Handle(
	_ context.Context,
	query GetRobotStatusQuery,
) (GetRobotStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRobotStatusQueryResponse{}, err
	}

	s := h.source.Snapshot()
	return GetRobotStatusQueryResponse{
		State:         s.State,
		Goal:          s.Goal,
		Queue:         s.Queue,
		CycleID:       s.CycleID,
		CancelPending: s.CancelPending,
		Serving:       s.Serving,
	}, nil
}
