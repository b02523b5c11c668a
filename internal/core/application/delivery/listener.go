package delivery

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/ports"
)

const (
	modifyPrompt = "Do you want to add or remove tables? (add/remove/none): "
	addPrompt    = "Enter table numbers to add (comma separated): "
	removePrompt = "Enter the table number(s) to remove (comma separated): "
)

// OrderModifier applies a queue modification.
type OrderModifier interface {
	Handle(ctx context.Context, cmd commands.ModifyOrdersCommand) (commands.ModifyOrdersResult, error)
}

// ModificationListener offers the operator a window to add or remove
// destinations while a delivery is in progress.
//
// It keeps asking while the delivery runs and ends on the first of: no input
// within the window, "none", a completed add, or a remove that removed
// something. A remove that matched nothing asks again.
type ModificationListener struct {
	console  ports.Console
	session  *robot.Session
	modifier OrderModifier
	window   time.Duration
	logger   *slog.Logger
}

// NewModificationListener creates a listener.
func NewModificationListener(
	console ports.Console,
	session *robot.Session,
	modifier OrderModifier,
	window time.Duration,
	logger *slog.Logger,
) *ModificationListener {
	return &ModificationListener{
		console:  console,
		session:  session,
		modifier: modifier,
		window:   window,
		logger:   logger.With("component", "modification_listener"),
	}
}

// Listen runs the modification window. It returns when the window closes or
// ctx is done.
func (l *ModificationListener) Listen(ctx context.Context) {
	for l.session.IsDelivering() {
		answer, ok, err := l.console.Ask(ctx, modifyPrompt, l.window)
		if err != nil {
			return
		}
		if !ok {
			l.logger.InfoContext(ctx, "No input received, closing modification window", "window", l.window)
			return
		}

		switch strings.ToLower(answer) {
		case "none":
			l.logger.InfoContext(ctx, "No modifications requested")
			return
		case string(commands.ActionAdd):
			l.modify(ctx, commands.ActionAdd, addPrompt)
			return
		case string(commands.ActionRemove):
			if l.modify(ctx, commands.ActionRemove, removePrompt) {
				return
			}
		default:
			l.logger.InfoContext(ctx, "Invalid input. Please enter 'add', 'remove', or 'none'")
		}
	}
}

// modify asks for the tables and applies the change. It reports whether the
// window is done.
func (l *ModificationListener) modify(ctx context.Context, action commands.ModifyAction, prompt string) bool {
	answer, ok, err := l.console.Ask(ctx, prompt, l.window)
	if err != nil || !ok {
		l.logger.InfoContext(ctx, "No tables entered, closing modification window")
		return true
	}

	cmd, err := commands.NewModifyOrdersCommand(action, commands.ParseTableList(answer))
	if err != nil {
		return l.rejected(ctx, action)
	}

	result, err := l.modifier.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNothingToAdd), errors.Is(err, commands.ErrNothingToRemove):
		return l.rejected(ctx, action)
	case err != nil:
		l.logger.ErrorContext(ctx, "Queue modification failed", "action", action, "error", err)
		return true
	}

	if result.Abandoned {
		l.logger.InfoContext(ctx, "No more tables in the order queue, canceling kitchen trip and returning home",
			"removed", result.Tables)
		return true
	}

	l.logger.InfoContext(ctx, "Order queue modified", "action", action, "tables", result.Tables)
	return true
}

func (l *ModificationListener) rejected(ctx context.Context, action commands.ModifyAction) bool {
	if action == commands.ActionAdd {
		l.logger.InfoContext(ctx, "No valid tables to add or they are already in the queue")
		return true
	}
	l.logger.InfoContext(ctx, "No valid tables to remove")
	return false
}
