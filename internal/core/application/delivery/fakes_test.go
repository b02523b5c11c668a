package delivery_test

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"butler/internal/core/application/delivery"
	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"
	"butler/internal/core/domain/services"
	"butler/internal/core/ports"

	"github.com/stretchr/testify/require"
)

// scriptedConsole answers prompts from per-prompt scripts. A prompt without a
// scripted answer waits out its timeout.
type scriptedConsole struct {
	mu      sync.Mutex
	answers map[string][]string
	asked   []string
}

func newScriptedConsole(answers map[string][]string) *scriptedConsole {
	if answers == nil {
		answers = map[string][]string{}
	}
	return &scriptedConsole{answers: answers}
}

func (c *scriptedConsole) Ask(ctx context.Context, prompt string, timeout time.Duration) (string, bool, error) {
	c.mu.Lock()
	c.asked = append(c.asked, prompt)
	if queue := c.answers[prompt]; len(queue) > 0 {
		c.answers[prompt] = queue[1:]
		c.mu.Unlock()
		return queue[0], true, nil
	}
	c.mu.Unlock()

	if timeout <= 0 {
		<-ctx.Done()
		return "", false, ctx.Err()
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-t.C:
		return "", false, nil
	}
}

func (c *scriptedConsole) Asked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.asked)
}

// fakeNavigator records every goal by waypoint name. Goals listed in fail
// fail at once; goals listed in hang block until they are canceled, either by
// their context or by CancelCurrentGoal. With cancelDelay set, CancelCurrentGoal
// reaches the goal in flight only after that delay, as a cancel message would.
// Every other goal takes travel to complete.
type fakeNavigator struct {
	mu          sync.Mutex
	registry    *waypoint.Registry
	visits      []string
	fail        map[string]bool
	hang        map[string]int
	cancelDelay time.Duration
	travel      time.Duration
	cancels     int
	current     context.CancelFunc
	started     chan string
}

func newFakeNavigator(registry *waypoint.Registry) *fakeNavigator {
	return &fakeNavigator{
		registry: registry,
		fail:     map[string]bool{},
		hang:     map[string]int{},
		started:  make(chan string, 64),
	}
}

func (n *fakeNavigator) MoveTo(ctx context.Context, pose kernel.Pose) (ports.GoalStatus, error) {
	name := n.nameOf(pose)
	goalCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	n.mu.Lock()
	n.visits = append(n.visits, name)
	hang := n.hang[name] > 0
	if hang {
		n.hang[name]--
	}
	fail := n.fail[name]
	travel := n.travel
	n.current = cancel
	n.mu.Unlock()

	n.started <- name

	if hang {
		<-goalCtx.Done()
	} else if travel > 0 {
		select {
		case <-goalCtx.Done():
		case <-time.After(travel):
		}
	}
	if goalCtx.Err() != nil {
		return ports.GoalCanceled, nil
	}
	if fail {
		return ports.GoalFailed, nil
	}
	return ports.GoalSucceeded, nil
}

// CancelCurrentGoal cancels whichever goal is in flight when the cancel lands.
func (n *fakeNavigator) CancelCurrentGoal() {
	n.mu.Lock()
	n.cancels++
	delay := n.cancelDelay
	n.mu.Unlock()

	apply := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.current != nil {
			n.current()
		}
	}
	if delay <= 0 {
		apply()
		return
	}
	go func() {
		time.Sleep(delay)
		apply()
	}()
}

func (n *fakeNavigator) Visits() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.visits)
}

func (n *fakeNavigator) CancelCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancels
}

func (n *fakeNavigator) nameOf(pose kernel.Pose) string {
	names := append([]string{waypoint.Kitchen, waypoint.Home}, n.registry.Tables()...)
	for _, name := range names {
		wp, _ := n.registry.Get(name)
		if wp.Pose().IsEqual(pose) {
			return name
		}
	}
	return pose.String()
}

// waitStarted blocks until the navigator has been sent towards name.
func (n *fakeNavigator) waitStarted(t *testing.T, name string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-n.started:
			if got == name {
				return
			}
		case <-timeout:
			t.Fatalf("navigator never started towards %s", name)
		}
	}
}

// recorderSpy implements ports.DeliveryRecorder.
type recorderSpy struct {
	mu            sync.Mutex
	cycles        chan string
	confirmations []string
	cancelReasons []robot.CancelReason
}

func newRecorderSpy() *recorderSpy {
	return &recorderSpy{cycles: make(chan string, 16)}
}

func (r *recorderSpy) CycleFinished(outcome string) { r.cycles <- outcome }

func (r *recorderSpy) GoalFinished(string, ports.GoalStatus) {}

func (r *recorderSpy) ConfirmationFinished(location, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmations = append(r.confirmations, location+":"+outcome)
}

func (r *recorderSpy) CancelRequested(reason robot.CancelReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelReasons = append(r.cancelReasons, reason)
}

func (r *recorderSpy) ObserveSession(robot.Snapshot) {}

func (r *recorderSpy) Confirmations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.confirmations)
}

func (r *recorderSpy) CancelReasons() []robot.CancelReason {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cancelReasons)
}

func (r *recorderSpy) waitCycle(t *testing.T) string {
	t.Helper()
	select {
	case outcome := <-r.cycles:
		return outcome
	case <-time.After(5 * time.Second):
		t.Fatal("delivery cycle did not finish")
		return ""
	}
}

func testTiming() delivery.Timing {
	return delivery.Timing{
		ConfirmTimeout:        150 * time.Millisecond,
		ConfirmAttemptTimeout: 20 * time.Millisecond,
		ModifyWindow:          20 * time.Millisecond,
		IntakePollInterval:    10 * time.Millisecond,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// harness wires the delivery package with fakes at the ports.
type harness struct {
	session    *robot.Session
	registry   *waypoint.Registry
	navigator  *fakeNavigator
	console    *scriptedConsole
	recorder   *recorderSpy
	cancels    *delivery.CancelChannel
	controller *delivery.Controller
	place      commands.PlaceOrdersCommandHandler
	intake     *delivery.IntakeLoop
}

func newHarness(answers map[string][]string) *harness {
	timing := testTiming()
	logger := discardLogger()

	h := &harness{
		session:  robot.NewSession(),
		registry: waypoint.DefaultRegistry(),
		console:  newScriptedConsole(answers),
		recorder: newRecorderSpy(),
		cancels:  delivery.NewCancelChannel(8),
	}
	h.navigator = newFakeNavigator(h.registry)

	modify := commands.NewModifyOrdersCommandHandler(h.session, h.registry, h.cancels)
	gate := delivery.NewGate(h.console, h.session, h.recorder,
		timing.ConfirmTimeout, timing.ConfirmAttemptTimeout, logger)
	listener := delivery.NewModificationListener(h.console, h.session, modify, timing.ModifyWindow, logger)

	h.controller = delivery.NewController(h.session, h.registry, h.navigator,
		services.NewRecoveryPlanner(), gate, listener, h.cancels, h.recorder, logger)

	h.place = commands.NewPlaceOrdersCommandHandler(h.session, h.registry, h.controller)
	h.intake = newIntakeWithConsole(h, h.console)
	return h
}

func newIntakeWithConsole(h *harness, console ports.Console) *delivery.IntakeLoop {
	return delivery.NewIntakeLoop(console, h.session, h.place, testTiming().IntakePollInterval, discardLogger())
}

// run starts the cancellation loop for the duration of the test.
func (h *harness) run(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.controller.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func (h *harness) start(t *testing.T, tables ...string) {
	t.Helper()
	_, err := h.session.PlaceOrders(tables)
	require.NoError(t, err)
	require.NoError(t, h.controller.StartCycle(t.Context()))
}
