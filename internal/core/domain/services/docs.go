// Package services provides domain services of the butler robot: business rules
// that do not belong to a single model type.
//
// The package includes:
//   - RecoveryPlanner: decides the forced recovery route after a cancellation
package services
