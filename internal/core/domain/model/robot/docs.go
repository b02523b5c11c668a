// Package robot models the logical state of the butler robot and the guarded
// Session that coordinates the concurrent actors working on it: order intake,
// the queue modification listener, the delivery cycle and cancellation.
//
// Key business rules:
//   - A delivery cycle begins only from Idle, and immediately enters Delivery
//   - Every read or change of the state and the order queue happens under one lock
//   - A cancellation is authoritative: Canceled is set at once and the running
//     cycle stops at its next boundary
//   - Every cycle, successful or not, ends in Idle
package robot
