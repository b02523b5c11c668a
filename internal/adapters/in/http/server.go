package http

import (
	"errors"
	"net/http"

	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/application/usecases/queries"
	"butler/internal/core/domain/model/robot"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server handles the operator API. It translates HTTP requests into commands
// and queries and maps their errors to status codes.
type Server struct {
	// Command handlers
	placeOrdersHandler    commands.PlaceOrdersCommandHandler
	modifyOrdersHandler   commands.ModifyOrdersCommandHandler
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler

	// Query handlers
	getRobotStatusHandler queries.GetRobotStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrdersHandler commands.PlaceOrdersCommandHandler,
	modifyOrdersHandler commands.ModifyOrdersCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	getRobotStatusHandler queries.GetRobotStatusQueryHandler,
) *Server {
	return &Server{
		placeOrdersHandler:    placeOrdersHandler,
		modifyOrdersHandler:   modifyOrdersHandler,
		cancelDeliveryHandler: cancelDeliveryHandler,
		getRobotStatusHandler: getRobotStatusHandler,
	}
}

// GetRobotStatus handles GET /api/v1/robot - retrieves the robot status.
func (s *Server) GetRobotStatus(ctx echo.Context) error {
	status, err := s.getRobotStatusHandler.Handle(ctx.Request().Context(), queries.NewGetRobotStatusQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve robot status")
	}

	return ctx.JSON(http.StatusOK, RobotStatus{
		State:         status.State.String(),
		Goal:          status.Goal,
		Queue:         status.Queue,
		CycleID:       status.CycleID,
		CancelPending: status.CancelPending,
		Serving:       status.Serving,
	})
}

// PlaceOrders handles POST /api/v1/orders - queues orders and starts a delivery.
func (s *Server) PlaceOrders(ctx echo.Context) error {
	var body Tables
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPlaceOrdersCommand(body.Tables)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid orders: "+err.Error())
	}

	accepted, err := s.placeOrdersHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrNoValidTables):
		return errorJSON(ctx, http.StatusUnprocessableEntity, "Invalid table numbers")
	case errors.Is(err, robot.ErrRobotBusy):
		return errorJSON(ctx, http.StatusConflict, "Robot is busy with another task")
	case err != nil:
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to place orders")
	}

	return ctx.JSON(http.StatusCreated, Tables{Tables: accepted})
}

// AddToQueue handles POST /api/v1/queue - adds tables to the running delivery.
func (s *Server) AddToQueue(ctx echo.Context) error {
	var body Tables
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewModifyOrdersCommand(commands.ActionAdd, body.Tables)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid tables: "+err.Error())
	}

	result, err := s.modifyOrdersHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, robot.ErrNoActiveDelivery):
		return errorJSON(ctx, http.StatusConflict, "No delivery in progress")
	case errors.Is(err, commands.ErrNothingToAdd):
		return errorJSON(ctx, http.StatusUnprocessableEntity, "No valid tables to add or they are already in the queue")
	case err != nil:
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to modify the queue")
	}

	return ctx.JSON(http.StatusOK, Tables{Tables: result.Tables})
}

// RemoveFromQueue handles DELETE /api/v1/queue/{table} - removes a table.
func (s *Server) RemoveFromQueue(ctx echo.Context) error {
	var table string
	err := runtime.BindStyledParameterWithOptions("simple", "table", ctx.Param("table"), &table,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid format for parameter table: "+err.Error())
	}

	cmd, err := commands.NewModifyOrdersCommand(commands.ActionRemove, []string{table})
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid table: "+err.Error())
	}

	_, err = s.modifyOrdersHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrNothingToRemove):
		return errorJSON(ctx, http.StatusNotFound, "Table is not in the queue")
	case err != nil:
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to modify the queue")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles DELETE /api/v1/delivery - requests a cancellation.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	cmd, err := commands.NewCancelDeliveryCommand(robot.CancelOperator)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to build cancellation")
	}

	if err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, http.StatusServiceUnavailable, "Cancellation could not be queued")
	}

	return ctx.NoContent(http.StatusAccepted)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
