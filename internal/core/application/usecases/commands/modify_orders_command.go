package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"butler/internal/pkg/errs"
	"butler/internal/pkg/guard"
)

// ModifyAction is the kind of queue modification.
type ModifyAction string

const (
	ActionAdd    ModifyAction = "add"
	ActionRemove ModifyAction = "remove"
)

var (
	ErrModifyOrdersCommandIsNotConstructed = errors.New(
		"ModifyOrdersCommand must be created via NewModifyOrdersCommand constructor",
	)
	ErrNothingToAdd    = errors.New("no valid tables to add or they are already in the queue")
	ErrNothingToRemove = errors.New("no valid tables to remove")
)

// ParseModifyAction maps operator input ("add", " Remove ") to a ModifyAction.
func ParseModifyAction(s string) (ModifyAction, error) {
	switch a := ModifyAction(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionAdd, ActionRemove:
		return a, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not add or remove", s))
	}
}

// ModifyOrdersCommand adds destinations to, or removes them from, the queue
// while a delivery is in progress.
type ModifyOrdersCommand struct {
	action   ModifyAction
	tableIDs []string

	guard guard.ConstructorGuard
}

// NewModifyOrdersCommand creates the command.
func NewModifyOrdersCommand(action ModifyAction, tableIDs []string) (ModifyOrdersCommand, error) {
	cmd := ModifyOrdersCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(cmd.setAction(action), cmd.setTableIDs(tableIDs)); err != nil {
		return ModifyOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ModifyOrdersCommand) Validate() error {
	return c.guard.Validate(ErrModifyOrdersCommandIsNotConstructed)
}

// Action returns the modification kind.
func (c ModifyOrdersCommand) Action() ModifyAction {
	return c.action
}

// TableIDs returns the table identifiers to add or remove.
func (c ModifyOrdersCommand) TableIDs() []string {
	return slices.Clone(c.tableIDs)
}

func (c *ModifyOrdersCommand) setAction(action ModifyAction) error {
	if action != ActionAdd && action != ActionRemove {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not add or remove", action))
	}
	c.action = action
	return nil
}

func (c *ModifyOrdersCommand) setTableIDs(tableIDs []string) error {
	if len(tableIDs) == 0 {
		return ErrTablesAreRequired
	}
	c.tableIDs = slices.Clone(tableIDs)
	return nil
}
