// Package queries contains read operations for retrieving system state.
// Queries return read models shaped for the operator API and status reports.
package queries

import (
	"errors"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/robot"
	"butler/internal/pkg/guard"
)

var (
	ErrGetRobotStatusQueryIsNotConstructed = errors.New(
		"GetRobotStatusQuery must be created via NewGetRobotStatusQuery constructor",
	)
)

// GetRobotStatusQuery retrieves the robot's current logical state, goal and queue.
//
// Example:
//
//	query := NewGetRobotStatusQuery()
//	handler := NewGetRobotStatusQueryHandler(session)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read robot status: %w", err)
//	}
//	fmt.Printf("%s heading to %s, %d queued\n", status.State, status.Goal, len(status.Queue))
type GetRobotStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRobotStatusQuery creates a parameterless status query.
func NewGetRobotStatusQuery() GetRobotStatusQuery {
	return GetRobotStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRobotStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetRobotStatusQueryIsNotConstructed)
}

// GetRobotStatusQueryResponse is the status read model.
type GetRobotStatusQueryResponse struct {
	State         robot.State `json:"state"`
	Goal          string      `json:"goal"`
	Queue         []string    `json:"queue"`
	CycleID       kernel.UUID `json:"cycle_id"`
	CancelPending bool        `json:"cancel_pending"`
	Serving       bool        `json:"serving"`
}
