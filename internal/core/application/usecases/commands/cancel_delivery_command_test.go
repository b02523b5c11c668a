package commands_test

import (
	"errors"
	"testing"

	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/domain/model/robot"
	"butler/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewCancelDeliveryCommand(t *testing.T) {
	for _, reason := range []robot.CancelReason{robot.CancelInterrupt, robot.CancelOperator} {
		cmd, err := commands.NewCancelDeliveryCommand(reason)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, reason, cmd.Reason())
	}
}

func TestNewCancelDeliveryCommand_InternalReasonRejected(t *testing.T) {
	_, err := commands.NewCancelDeliveryCommand(robot.CancelQueueEmptied)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCancelDeliveryCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelDeliveryCommand(robot.CancelOperator)

	canceler := new(MockCanceler)
	canceler.On("RequestCancel", ctx, robot.CancelOperator).Return(nil).Once()

	err := commands.NewCancelDeliveryCommandHandler(canceler).Handle(ctx, cmd)

	require.NoError(t, err)
	canceler.AssertExpectations(t)
}

func TestCancelDeliveryCommandHandler_Handle_SendFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelDeliveryCommand(robot.CancelInterrupt)
	failure := errors.New("cancel queue full")

	canceler := new(MockCanceler)
	canceler.On("RequestCancel", ctx, robot.CancelInterrupt).Return(failure).Once()

	err := commands.NewCancelDeliveryCommandHandler(canceler).Handle(ctx, cmd)

	require.ErrorIs(t, err, failure)
}

func TestCancelDeliveryCommandHandler_Handle_NotConstructed(t *testing.T) {
	err := commands.NewCancelDeliveryCommandHandler(new(MockCanceler)).Handle(t.Context(), commands.CancelDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrCancelDeliveryCommandIsNotConstructed)
}
