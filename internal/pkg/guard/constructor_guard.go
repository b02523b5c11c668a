// Package guard provides ConstructorGuard, which lets value objects, commands and
// queries detect that they were built as zero values instead of through their
// constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is invalid. Only the
// type's constructor sets it, so Validate fails for a zero-value instance.
//
// Example:
//
//	type Pose struct {
//	    x, y, w float64
//	    guard   guard.ConstructorGuard
//	}
//
//	func (p Pose) Validate() error {
//	    return p.guard.Validate(ErrPoseIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
