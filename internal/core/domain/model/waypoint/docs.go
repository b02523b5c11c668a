// Package waypoint holds the robot's named destinations: the kitchen, home and
// the delivery tables. Waypoints are loaded into a Registry once at startup and
// never change afterwards.
package waypoint
