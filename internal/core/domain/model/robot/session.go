package robot

import (
	"errors"
	"sync"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/order"
)

// Session is the single authoritative record of the robot: its logical state,
// the order queue, the current goal location and the cancel-pending flag.
//
// Every field is guarded by one mutex and is reachable only through methods that
// check and change state atomically. The lock is never held across navigation or
// confirmation; callers do those between Session calls.
//
// Example:
//
//	s := robot.NewSession()
//	if _, err := s.PlaceOrders([]string{"table1"}); err != nil {
//	    // robot is busy
//	}
//	cycleID, err := s.TryBeginDelivery(abort)
//	for table, ok := s.PopNext(); ok; table, ok = s.PopNext() {
//	    // serve table
//	}
//	s.Complete()
type Session struct {
	mu sync.Mutex

	state         State
	queue         *order.Queue
	goal          string
	cancelPending bool
	cycleID       kernel.UUID

	// draining is set once the cycle starts serving tables.
	draining bool
	// recovery is the route recorded by the last accepted cancellation.
	recovery Recovery
	// abort interrupts the running cycle's blocking calls; nil outside a cycle.
	abort func()
}

// Snapshot is a consistent copy of the session taken under the lock.
type Snapshot struct {
	State         State       `json:"state"`
	Goal          string      `json:"goal"`
	Queue         []string    `json:"queue"`
	CycleID       kernel.UUID `json:"cycle_id"`
	CancelPending bool        `json:"cancel_pending"`
	Serving       bool        `json:"serving"`
}

// NewSession returns an Idle session with an empty queue.
func NewSession() *Session {
	return &Session{
		state: Idle,
		queue: order.NewQueue(),
	}
}

// PlaceOrders queues new destinations while the robot is Idle.
//
// Returns:
//   - []string: destinations appended (duplicates suppressed)
//   - error: ErrRobotBusy when the robot is not Idle; nothing is queued then
func (s *Session) PlaceOrders(tables []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return nil, ErrRobotBusy
	}
	return s.queue.Add(tables...), nil
}

// AddOrders appends destinations to the queue of the running delivery. They
// join the tail and are served after everything queued before them.
//
// Returns ErrNoActiveDelivery when no delivery is running or it was canceled.
func (s *Session) AddOrders(tables []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsDelivering() {
		return nil, ErrNoActiveDelivery
	}
	return s.queue.Add(tables...), nil
}

// RemoveOrders removes destinations from the queue in any state.
//
// Returns:
//   - removed: destinations actually removed
//   - abandon: true when the removal emptied the queue of a running cycle that
//     has not started serving tables yet; the caller must cancel the cycle
func (s *Session) RemoveOrders(tables []string) (removed []string, abandon bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed = s.queue.Remove(tables...)
	abandon = len(removed) > 0 && s.queue.IsEmpty() && s.state.IsDelivering() && !s.draining
	return removed, abandon
}

// TryBeginDelivery atomically checks for Idle and moves to Delivery.
//
// Parameters:
//   - abort: called (under the lock) if the cycle is canceled; it must not block
//
// Returns:
//   - kernel.UUID: identifier of the new cycle
//   - error: ErrRobotBusy when not Idle; the state is left unchanged
func (s *Session) TryBeginDelivery(abort func()) (kernel.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.BeginDelivery()
	if err != nil {
		return kernel.UUID{}, err
	}

	s.state = next
	s.draining = false
	s.recovery = RecoverNone
	s.abort = abort
	s.cycleID = kernel.NewUUID()
	return s.cycleID, nil
}

// BeginServing records that the cycle has passed the kitchen and drains the
// queue from now on.
func (s *Session) BeginServing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draining = true
}

// PopNext removes the head of the queue for the running cycle. It reports
// false when the queue is empty or the cycle has been canceled.
func (s *Session) PopNext() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsDelivering() {
		return "", false
	}
	return s.queue.Pop()
}

// SetGoal records the waypoint the robot is about to travel to or wait at.
func (s *Session) SetGoal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = name
}

// AwaitConfirmation records location as the goal and enters WaitingConfirmation.
// It fails when the cycle was canceled in the meantime.
func (s *Session) AwaitConfirmation(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goal = location
	next, err := s.state.AwaitConfirmation()
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// ResumeDelivery leaves WaitingConfirmation. A Canceled state is kept.
func (s *Session) ResumeDelivery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.ResumeDelivery()
}

// Cancel accepts a cancellation: the state becomes Canceled, the recovery route
// chosen by planner is recorded and the running cycle, if any, is aborted.
//
// Returns ErrAlreadyCanceled (with CycleActive set) when a previous
// cancellation is still being recovered from; nothing changes then.
func (s *Session) Cancel(planner RecoveryPlanner, reason CancelReason) (CancelOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := CancelOutcome{
		Previous:    s.state,
		Goal:        s.goal,
		CycleActive: s.abort != nil,
	}

	next, err := s.state.Cancel()
	if err != nil {
		if errors.Is(err, ErrAlreadyCanceled) && s.abort != nil {
			s.abort()
		}
		return outcome, err
	}

	outcome.Plan = planner.Plan(s.goal, reason)
	s.state = next
	s.recovery = outcome.Plan.Route
	if outcome.Plan.MarkCancelPending {
		s.cancelPending = true
	}
	if s.abort != nil {
		s.abort()
	}
	return outcome, nil
}

// TakeCancelPending returns the cancel-pending flag and clears it.
func (s *Session) TakeCancelPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.cancelPending
	s.cancelPending = false
	return pending
}

// Complete ends the current cycle or recovery and returns to Idle, unless a
// cancellation has recorded a recovery route that was not run yet. In that case
// the route is cleared and returned and the session stays Canceled; the caller
// runs it and calls Complete again.
//
// The queue and the last goal are kept; anything still queued waits for the
// next cycle.
//
// Example:
//
//	for r := s.Complete(); r != robot.RecoverNone; r = s.Complete() {
//	    runRecovery(r)
//	}
func (s *Session) Complete() Recovery {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r := s.recovery; r != RecoverNone {
		s.recovery = RecoverNone
		return r
	}

	s.state = Idle
	s.draining = false
	s.cancelPending = false
	s.abort = nil
	return RecoverNone
}

// State returns the current logical state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsIdle reports whether the robot is Idle.
func (s *Session) IsIdle() bool {
	return s.State() == Idle
}

// IsCanceled reports whether a cancellation is being handled.
func (s *Session) IsCanceled() bool {
	return s.State() == Canceled
}

// IsDelivering reports whether a cycle is running and not canceled.
func (s *Session) IsDelivering() bool {
	return s.State().IsDelivering()
}

// Goal returns the current goal location.
func (s *Session) Goal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goal
}

// Snapshot returns a consistent copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queue.Items()
	if queue == nil {
		queue = []string{}
	}

	return Snapshot{
		State:         s.state,
		Goal:          s.goal,
		Queue:         queue,
		CycleID:       s.cycleID,
		CancelPending: s.cancelPending,
		Serving:       s.draining,
	}
}
