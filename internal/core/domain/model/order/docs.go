// Package order provides the order queue of the butler robot: the FIFO list of
// table destinations awaiting delivery.
//
// Key business rules:
//   - Destinations are served strictly in insertion order
//   - A destination is queued at most once; duplicates are suppressed on add
//   - A removed destination is never served
//
// Validation that every destination is a registered table happens before names
// reach the queue (see waypoint.Registry.ResolveTable).
package order
