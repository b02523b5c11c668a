package waypoint

import (
	"fmt"
	"slices"
	"strings"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/pkg/errs"
)

// Registry is the static table of waypoints keyed by name. It is loaded once at
// startup and is read-only afterwards, so it is safe for concurrent use.
//
// Business rules:
//   - Kitchen and Home must be present
//   - At least one table must be present
//   - Names are unique
type Registry struct {
	byName map[string]Waypoint
	tables []string
}

// NewRegistry builds a Registry from waypoints and checks its rules.
func NewRegistry(waypoints ...Waypoint) (*Registry, error) {
	r := &Registry{byName: make(map[string]Waypoint, len(waypoints))}

	for _, wp := range waypoints {
		if err := wp.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[wp.Name()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("waypoints",
				fmt.Errorf("duplicate waypoint %q", wp.Name()))
		}
		r.byName[wp.Name()] = wp
		if wp.IsTable() {
			r.tables = append(r.tables, wp.Name())
		}
	}

	for _, required := range []string{Kitchen, Home} {
		if _, ok := r.byName[required]; !ok {
			return nil, errs.NewValueIsRequiredError(required + " waypoint")
		}
	}
	if len(r.tables) == 0 {
		return nil, errs.NewValueIsRequiredError("table waypoint")
	}
	slices.Sort(r.tables)

	return r, nil
}

// DefaultRegistry returns the restaurant map the robot ships with.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		mustWaypoint(Kitchen, 7.675238132476807, -6.01118278503418, 1.0),
		mustWaypoint(Home, 0.0, 0.0, 1.0),
		mustWaypoint("table1", 12.085535049438477, 4.3402838706970215, 0.6417557517388287),
		mustWaypoint("table2", -10.501110076904297, 5.375353813171387, 0.8235567479660424),
		mustWaypoint("table3", -7.50412654876709, -9.034976959228516, 0.21287361489247497),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the waypoint registered under name.
func (r *Registry) Get(name string) (Waypoint, error) {
	wp, ok := r.byName[name]
	if !ok {
		return Waypoint{}, errs.NewObjectNotFoundError("waypoint", name)
	}
	return wp, nil
}

// Contains reports whether name is a registered waypoint.
func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// ResolveTable maps an operator-entered table identifier ("2", " 2 ") to its
// waypoint name ("table2"). It reports false when no such table is registered.
func (r *Registry) ResolveTable(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	name := TablePrefix + id
	if _, ok := r.byName[name]; !ok {
		return "", false
	}
	return name, true
}

// Tables returns the registered table names in sorted order.
func (r *Registry) Tables() []string {
	return slices.Clone(r.tables)
}

func mustWaypoint(name string, x, y, w float64) Waypoint {
	wp, err := NewWaypoint(name, kernel.MustNewPose(x, y, w))
	if err != nil {
		panic(err)
	}
	return wp
}
