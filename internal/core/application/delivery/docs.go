// Package delivery runs the robot's delivery cycles.
//
// # Components
//
// 1. Controller - starts delivery cycles (kitchen, then each queued table, then
// home) and is the single consumer of cancellation requests
// 2. Gate - the per-stop yes/no confirmation with a bounded window
// 3. ModificationListener - the add/remove window offered on the way to the kitchen
// 4. IntakeLoop - reads new orders from the operator while the robot is idle
// 5. CancelChannel - carries cancellation requests from signals, the operator API
// and queue modifications to the controller
//
// # Concurrency
//
// All robot state lives in robot.Session. No component here holds the session
// lock across navigation or console reads. Cancellation never touches the
// navigator or the session from the caller's goroutine: it is a CancelRequest
// that Controller.Run applies. An accepted cancellation records the recovery
// route and aborts the running cycle; the cycle runs the route on its way out
// and returns the robot to Idle. Without a running cycle, Run starts a
// recovery goroutine that does the same.
//
// # Usage
//
//	cancels := delivery.NewCancelChannel(8)
//	controller := delivery.NewController(session, registry, navigator, planner,
//	    gate, listener, cancels, recorder, logger)
//	go controller.Run(ctx)
//
//	if err := controller.StartCycle(ctx); errors.Is(err, robot.ErrRobotBusy) {
//	    // a cycle is already running
//	}
package delivery
