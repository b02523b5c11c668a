package kernel

import (
	"butler/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID")

// UUID is a value object wrapping github.com/google/uuid. It identifies a
// delivery cycle in logs, metrics and the status read model.
//
// The zero value of UUID is invalid; it is what an idle robot reports as its
// cycle ID before the first delivery.
//
// Example:
//
//	cycleID := kernel.NewUUID()
//	logger = logger.With("cycle_id", cycleID.String())
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// For the zero value this is the nil UUID.
func (u UUID) String() string {
	return u.id.String()
}

// MarshalText encodes the UUID for JSON read models. The zero value encodes
// as an empty string.
func (u UUID) MarshalText() ([]byte, error) {
	if u.id == uuid.Nil {
		return []byte{}, nil
	}
	return u.id.MarshalText()
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether the UUID was never assigned.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
