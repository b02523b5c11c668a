// Package kernel provides core domain primitives for the butler robot.
//
// The package includes:
//   - Pose: a value object for a map position plus heading, as sent to navigation
//   - UUID: a value object identifying delivery cycles
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and fail Validate; use the constructors.
package kernel
