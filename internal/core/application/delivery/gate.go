package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"butler/internal/core/domain/model/robot"
	"butler/internal/core/ports"
)

// Outcome is the result of a confirmation wait.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	// Confirmed means the operator answered yes.
	Confirmed
	// Declined means the operator answered no.
	Declined
	// TimedOut means no yes/no answer arrived within the window.
	TimedOut
	// Preempted means the cycle was canceled during the wait.
	Preempted
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Declined:
		return "declined"
	case TimedOut:
		return "timed_out"
	case Preempted:
		return "canceled"
	default:
		return "unknown"
	}
}

// Gate asks the operator to confirm the robot's arrival at a stop.
//
// The wait is bounded by window and split into prompts of at most attempt each.
// An unrecognized answer is rejected and asked again within the same window.
// A cancellation ends the wait immediately. The gate only reports; recovery
// after a decline or timeout is the controller's business.
type Gate struct {
	console  ports.Console
	session  *robot.Session
	recorder ports.DeliveryRecorder
	window   time.Duration
	attempt  time.Duration
	logger   *slog.Logger
}

// NewGate creates a confirmation gate.
func NewGate(
	console ports.Console,
	session *robot.Session,
	recorder ports.DeliveryRecorder,
	window, attempt time.Duration,
	logger *slog.Logger,
) *Gate {
	return &Gate{
		console:  console,
		session:  session,
		recorder: recorder,
		window:   window,
		attempt:  attempt,
		logger:   logger.With("component", "confirmation_gate"),
	}
}

// Await waits for a confirmation at location. The session is in
// WaitingConfirmation for the duration of the wait.
func (g *Gate) Await(ctx context.Context, location string) Outcome {
	if err := g.session.AwaitConfirmation(location); err != nil {
		g.logger.InfoContext(ctx, "Task canceled before confirmation", "location", location)
		return Preempted
	}
	defer g.session.ResumeDelivery()

	g.logger.InfoContext(ctx, "Waiting for confirmation", "location", location, "window", g.window)
	outcome := g.await(ctx, location)
	g.recorder.ConfirmationFinished(location, outcome.String())
	return outcome
}

func (g *Gate) await(ctx context.Context, location string) Outcome {
	prompt := fmt.Sprintf("Confirm at %s (yes/no): ", location)
	deadline := time.Now().Add(g.window)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			g.logger.InfoContext(ctx, "No confirmation received within timeout", "location", location)
			return TimedOut
		}

		answer, ok, err := g.console.Ask(ctx, prompt, min(g.attempt, remaining))
		if ctx.Err() != nil {
			g.logger.InfoContext(ctx, "Task canceled during confirmation", "location", location)
			return Preempted
		}
		if err != nil {
			g.logger.WarnContext(ctx, "Console unavailable, treating as no confirmation",
				"location", location, "error", err)
			return TimedOut
		}

		switch {
		case !ok:
			g.logger.InfoContext(ctx, "No input received, retrying..", "location", location)
		case strings.EqualFold(answer, "yes"):
			g.logger.InfoContext(ctx, "Confirmation received", "location", location)
			return Confirmed
		case strings.EqualFold(answer, "no"):
			g.logger.InfoContext(ctx, "Confirmation declined", "location", location)
			return Declined
		default:
			g.logger.InfoContext(ctx, "Invalid input, please type 'yes' or 'no'", "location", location)
		}

		if g.session.IsCanceled() {
			g.logger.InfoContext(ctx, "Task canceled during confirmation", "location", location)
			return Preempted
		}
	}
}
