// Package waypointfile loads the waypoint registry from a YAML file.
//
// File format:
//
//	waypoints:
//	  - name: kitchen
//	    x: 7.675
//	    y: -6.011
//	    w: 1.0
//	  - name: home
//	    x: 0
//	    y: 0
//	    w: 1.0
//	  - name: table1
//	    x: 12.085
//	    y: 4.340
//	    w: 0.642
package waypointfile

import (
	"errors"
	"fmt"
	"os"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/waypoint"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of the registry.
type File struct {
	Waypoints []Entry `yaml:"waypoints"`
}

// Entry is one waypoint in the file.
type Entry struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
}

// Load reads and parses the registry file at path.
func Load(path string) (*waypoint.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read waypoint file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML. Every entry is validated and the result
// must contain the kitchen, home and at least one table.
func Parse(data []byte) (*waypoint.Registry, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse waypoint file: %w", err)
	}

	waypoints := make([]waypoint.Waypoint, 0, len(file.Waypoints))
	var errs []error
	for i, e := range file.Waypoints {
		wp, err := e.toWaypoint()
		if err != nil {
			errs = append(errs, fmt.Errorf("waypoint %d (%q): %w", i, e.Name, err))
			continue
		}
		waypoints = append(waypoints, wp)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return waypoint.NewRegistry(waypoints...)
}

func (e Entry) toWaypoint() (waypoint.Waypoint, error) {
	pose, err := kernel.NewPose(e.X, e.Y, e.W)
	if err != nil {
		return waypoint.Waypoint{}, err
	}
	return waypoint.NewWaypoint(e.Name, pose)
}
