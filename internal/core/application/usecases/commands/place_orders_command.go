package commands

import (
	"errors"
	"slices"

	"butler/internal/pkg/guard"
)

var (
	ErrPlaceOrdersCommandIsNotConstructed = errors.New(
		"PlaceOrdersCommand must be created via NewPlaceOrdersCommand constructor",
	)
	ErrTablesAreRequired = errors.New("at least one table is required")
	ErrNoValidTables     = errors.New("no valid table numbers")
)

// PlaceOrdersCommand is a batch of orders entered while the robot is idle.
// Each entry is a table identifier as typed by the operator ("1" for table1).
//
// Example:
//
//	cmd, err := NewPlaceOrdersCommand(ParseTableList("1, 2"))
//	if err != nil {
//	    return err
//	}
//	accepted, err := handler.Handle(ctx, cmd) // accepted = [table1 table2]
type PlaceOrdersCommand struct {
	tableIDs []string

	guard guard.ConstructorGuard
}

// NewPlaceOrdersCommand creates the command. The list must not be empty;
// whether the tables exist is checked by the handler.
func NewPlaceOrdersCommand(tableIDs []string) (PlaceOrdersCommand, error) {
	if len(tableIDs) == 0 {
		return PlaceOrdersCommand{}, ErrTablesAreRequired
	}

	return PlaceOrdersCommand{
		tableIDs: slices.Clone(tableIDs),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrdersCommandIsNotConstructed)
}

// TableIDs returns the requested table identifiers.
func (c PlaceOrdersCommand) TableIDs() []string {
	return slices.Clone(c.tableIDs)
}
