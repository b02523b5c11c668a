// Package simnav is a simulated navigation stack. It moves a point robot in a
// straight line at constant speed, which is enough to drive delivery cycles
// without a real robot.
package simnav

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/ports"
)

// Simulator implements ports.Navigator.
//
// Every MoveTo opens its own goal session, so a canceled goal never leaks into
// the next call. Poses listed as unreachable fail immediately, as a planner
// would when no path exists.
type Simulator struct {
	speed       float64
	unreachable []kernel.Pose
	logger      *slog.Logger

	mu       sync.Mutex
	position kernel.Pose
	current  *goalSession
}

type goalSession struct {
	cancel context.CancelFunc
}

// NewSimulator creates a simulator starting at start.
//
// Parameters:
//   - start: initial pose of the robot
//   - speed: travel speed in map units per second; zero or less arrives at once
//   - unreachable: poses the simulated planner cannot reach
func NewSimulator(start kernel.Pose, speed float64, unreachable []kernel.Pose, logger *slog.Logger) *Simulator {
	return &Simulator{
		speed:       speed,
		unreachable: unreachable,
		position:    start,
		logger:      logger.With("component", "simnav"),
	}
}

// MoveTo implements ports.Navigator.
func (s *Simulator) MoveTo(ctx context.Context, target kernel.Pose) (ports.GoalStatus, error) {
	if err := target.Validate(); err != nil {
		return ports.GoalUnknown, fmt.Errorf("invalid navigation goal: %w", err)
	}

	goalCtx, session, from := s.open(ctx)
	defer s.close(session)

	for _, p := range s.unreachable {
		if p.IsEqual(target) {
			s.logger.WarnContext(ctx, "No path to goal", "target", target.String())
			return ports.GoalFailed, nil
		}
	}

	distance, err := from.Distance(target)
	if err != nil {
		return ports.GoalUnknown, err
	}
	travel := s.travelTime(distance)
	s.logger.DebugContext(ctx, "Goal accepted", "from", from.String(), "target", target.String(), "travel", travel)

	started := time.Now()
	timer := time.NewTimer(travel)
	defer timer.Stop()

	select {
	case <-timer.C:
		s.setPosition(target)
		return ports.GoalSucceeded, nil
	case <-goalCtx.Done():
		s.setPosition(interpolate(from, target, time.Since(started), travel))
		s.logger.InfoContext(ctx, "Goal canceled", "target", target.String())
		return ports.GoalCanceled, nil
	}
}

// CancelCurrentGoal implements ports.Navigator.
func (s *Simulator) CancelCurrentGoal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
	}
}

// Position returns where the robot is now.
func (s *Simulator) Position() kernel.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Simulator) open(ctx context.Context) (context.Context, *goalSession, kernel.Pose) {
	goalCtx, cancel := context.WithCancel(ctx)
	session := &goalSession{cancel: cancel}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
	return goalCtx, session, s.position
}

func (s *Simulator) close(session *goalSession) {
	session.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == session {
		s.current = nil
	}
}

func (s *Simulator) setPosition(p kernel.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = p
}

func (s *Simulator) travelTime(distance float64) time.Duration {
	if s.speed <= 0 {
		return 0
	}
	return time.Duration(distance / s.speed * float64(time.Second))
}

// interpolate returns the pose reached after elapsed of a travel-long trip.
func interpolate(from, to kernel.Pose, elapsed, travel time.Duration) kernel.Pose {
	if travel <= 0 || elapsed >= travel {
		return to
	}
	f := float64(elapsed) / float64(travel)
	p, err := kernel.NewPose(
		from.X()+(to.X()-from.X())*f,
		from.Y()+(to.Y()-from.Y())*f,
		to.W(),
	)
	if err != nil {
		return from
	}
	return p
}

var _ ports.Navigator = (*Simulator)(nil)
