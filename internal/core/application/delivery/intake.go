package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/ports"
)

const intakePrompt = "Enter table numbers (comma separated, or type 'exit' to quit): "

// OrderPlacer queues a batch of orders and starts a cycle.
type OrderPlacer interface {
	Handle(ctx context.Context, cmd commands.PlaceOrdersCommand) ([]string, error)
}

// IntakeLoop reads order batches from the operator console while the robot is
// idle. It is the console's owner outside delivery cycles.
type IntakeLoop struct {
	console ports.Console
	session *robot.Session
	placer  OrderPlacer
	poll    time.Duration
	logger  *slog.Logger
}

// NewIntakeLoop creates the loop. poll is both the prompt wait and the
// interval for re-checking whether the robot is idle.
func NewIntakeLoop(
	console ports.Console,
	session *robot.Session,
	placer OrderPlacer,
	poll time.Duration,
	logger *slog.Logger,
) *IntakeLoop {
	return &IntakeLoop{
		console: console,
		session: session,
		placer:  placer,
		poll:    poll,
		logger:  logger.With("component", "intake_loop"),
	}
}

// Run reads orders until the operator types "exit" (nil) or ctx is done (nil).
// A closed console is returned as an error wrapping io.EOF.
func (l *IntakeLoop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		if !l.session.IsIdle() {
			if !l.sleep(ctx) {
				return nil
			}
			continue
		}

		answer, ok, err := l.console.Ask(ctx, intakePrompt, l.poll)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("order intake stopped: %w", err)
		}
		if !ok {
			continue
		}

		if strings.EqualFold(answer, "exit") {
			l.logger.InfoContext(ctx, "Operator requested exit")
			return nil
		}
		l.place(ctx, answer)
	}
}

func (l *IntakeLoop) place(ctx context.Context, answer string) {
	cmd, err := commands.NewPlaceOrdersCommand(commands.ParseTableList(answer))
	if err != nil {
		l.logger.InfoContext(ctx, "Invalid table numbers, please try again")
		return
	}

	accepted, err := l.placer.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNoValidTables):
		l.logger.InfoContext(ctx, "Invalid table numbers, please try again")
	case errors.Is(err, robot.ErrRobotBusy):
		l.logger.InfoContext(ctx, "Robot is busy with another task")
	case err != nil:
		l.logger.ErrorContext(ctx, "Failed to place orders", "error", err)
	default:
		l.logger.InfoContext(ctx, "Orders received", "tables", accepted)
	}
}

func (l *IntakeLoop) sleep(ctx context.Context) bool {
	t := time.NewTimer(l.poll)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
