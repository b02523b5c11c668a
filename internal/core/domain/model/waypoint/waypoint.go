package waypoint

import (
	"errors"
	"strings"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/pkg/errs"
	"butler/internal/pkg/guard"
)

const (
	// Kitchen is where every delivery cycle starts and where cancellations en
	// route to a table are recovered to.
	Kitchen = "kitchen"
	// Home is the robot's resting place between cycles.
	Home = "home"
	// TablePrefix prefixes every table waypoint name ("table1", "table2", ...).
	TablePrefix = "table"
)

// ErrWaypointIsNotConstructed is returned when a zero-value Waypoint is used.
var ErrWaypointIsNotConstructed = errors.New("Waypoint must be created via NewWaypoint constructor")

// Waypoint is a named pose the robot can be sent to. It is immutable.
type Waypoint struct {
	name  string
	pose  kernel.Pose
	guard guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint. The name is trimmed and lower-cased and must
// not be empty; the pose must be valid.
func NewWaypoint(name string, pose kernel.Pose) (Waypoint, error) {
	wp := Waypoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(wp.setName(name), wp.setPose(pose)); err != nil {
		return Waypoint{}, err
	}

	return wp, nil
}

// Validate checks that the Waypoint was created through NewWaypoint.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Name returns the registry key of the waypoint.
func (w Waypoint) Name() string {
	return w.name
}

// Pose returns the target pose of the waypoint.
func (w Waypoint) Pose() kernel.Pose {
	return w.pose
}

// IsTable reports whether the waypoint is a delivery table.
func (w Waypoint) IsTable() bool {
	return IsTable(w.name)
}

// IsTable reports whether name denotes a table waypoint.
func IsTable(name string) bool {
	return strings.HasPrefix(name, TablePrefix) && len(name) > len(TablePrefix)
}

func (w *Waypoint) setName(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Waypoint) setPose(pose kernel.Pose) error {
	if err := pose.Validate(); err != nil {
		return err
	}
	w.pose = pose
	return nil
}
