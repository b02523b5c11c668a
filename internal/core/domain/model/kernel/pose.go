package kernel

import (
	"errors"
	"fmt"
	"math"

	"butler/internal/pkg/errs"
	"butler/internal/pkg/guard"
)

const (
	// HeadingMin is the smallest valid heading value. The heading is the w component
	// of the goal orientation quaternion handed to the navigation stack.
	HeadingMin = -1.0
	// HeadingMax is the largest valid heading value.
	HeadingMax = 1.0
)

// ErrPoseIsNotConstructed is returned when a zero-value Pose is used.
var ErrPoseIsNotConstructed = errs.NewValueIsRequiredError("pose must be created via NewPose constructor")

// Pose is a 2D position on the map frame plus a heading scalar.
// Pose is an immutable value object; its zero value is invalid.
//
// Example:
//
//	kitchen, err := kernel.NewPose(7.675, -6.011, 1.0)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(kitchen) // Output: Pose(7.675,-6.011,w=1)
type Pose struct { //nolint:recvcheck //using for validation
	x     float64
	y     float64
	w     float64
	guard guard.ConstructorGuard
}

// NewPose creates a Pose from map coordinates and a heading.
//
// Parameters:
//   - x, y: position in the map frame; must be finite numbers
//   - w: heading scalar; must be within [HeadingMin..HeadingMax]
//
// Returns:
//   - Pose: a valid pose
//   - error: validation errors for every invalid argument, joined
func NewPose(x, y, w float64) (Pose, error) {
	p := Pose{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setX(x), p.setY(y), p.setW(w)); err != nil {
		return Pose{}, err
	}

	return p, nil
}

// MustNewPose is NewPose for static tables known to be valid. It panics on error.
func MustNewPose(x, y, w float64) Pose {
	p, err := NewPose(x, y, w)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks that the Pose was created through NewPose.
func (p Pose) Validate() error {
	return p.guard.Validate(ErrPoseIsNotConstructed)
}

// X returns the x coordinate in the map frame.
func (p Pose) X() float64 {
	return p.x
}

// Y returns the y coordinate in the map frame.
func (p Pose) Y() float64 {
	return p.y
}

// W returns the heading scalar.
func (p Pose) W() float64 {
	return p.w
}

// Distance returns the straight-line distance between two poses.
// Both poses must be properly constructed.
//
// Example:
//
//	home, _ := kernel.NewPose(0, 0, 1)
//	far, _ := kernel.NewPose(3, 4, 1)
//	d, _ := home.Distance(far) // d = 5
func (p Pose) Distance(other Pose) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return math.Hypot(p.x-other.x, p.y-other.y), nil
}

// IsEqual reports whether two poses have the same coordinates and heading.
func (p Pose) IsEqual(other Pose) bool {
	return p.x == other.x && p.y == other.y && p.w == other.w
}

// String implements fmt.Stringer.
func (p Pose) String() string {
	return fmt.Sprintf("Pose(%g,%g,w=%g)", p.x, p.y, p.w)
}

func (p *Pose) setX(x float64) error {
	if !isFinite(x) {
		return errs.NewValueIsInvalidErrorWithCause("x", fmt.Errorf("%v is not a finite number", x))
	}
	p.x = x
	return nil
}

func (p *Pose) setY(y float64) error {
	if !isFinite(y) {
		return errs.NewValueIsInvalidErrorWithCause("y", fmt.Errorf("%v is not a finite number", y))
	}
	p.y = y
	return nil
}

func (p *Pose) setW(w float64) error {
	if math.IsNaN(w) || w < HeadingMin || w > HeadingMax {
		return errs.NewValueIsOutOfRangeError("w", w, HeadingMin, HeadingMax)
	}
	p.w = w
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
