package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"butler/internal/adapters/in/console"
	httpin "butler/internal/adapters/in/http"
	"butler/internal/adapters/in/http/openapi"
	"butler/internal/adapters/out/metrics"
	"butler/internal/adapters/out/simnav"
	"butler/internal/adapters/out/waypointfile"
	"butler/internal/core/application/delivery"
	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/application/usecases/queries"
	"butler/internal/core/domain/model/kernel"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"
	"butler/internal/core/domain/services"
	"butler/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// cancelBacklog is how many cancellation requests may wait for the controller.
const cancelBacklog = 16

// CompositionRoot owns the long-lived objects of the process and builds the
// handlers that use them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	session    *robot.Session
	registry   *waypoint.Registry
	cancels    *delivery.CancelChannel
	navigator  *simnav.Simulator
	console    *console.Terminal
	metrics    *prometheus.Registry
	recorder   *metrics.PrometheusRecorder
	controller *delivery.Controller
}

// NewCompositionRoot wires the robot. Operator prompts are read from in and
// written to out.
func NewCompositionRoot(cfg Config, in io.Reader, out io.Writer, logger *slog.Logger) (*CompositionRoot, error) {
	registry, err := loadRegistry(cfg.WaypointsFile)
	if err != nil {
		return nil, err
	}

	navigator, err := newNavigator(cfg, registry, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		session:   robot.NewSession(),
		registry:  registry,
		cancels:   delivery.NewCancelChannel(cancelBacklog),
		navigator: navigator,
		console:   console.NewTerminal(in, out, logger),
		metrics:   reg,
		recorder:  metrics.NewPrometheusRecorder(reg),
	}
	c.controller = c.newController()
	return c, nil
}

// Controller returns the delivery controller.
func (c *CompositionRoot) Controller() *delivery.Controller {
	return c.controller
}

func (c *CompositionRoot) CreatePlaceOrdersCommandHandler() commands.PlaceOrdersCommandHandler {
	return commands.NewPlaceOrdersCommandHandler(c.session, c.registry, c.controller)
}

func (c *CompositionRoot) CreateModifyOrdersCommandHandler() commands.ModifyOrdersCommandHandler {
	return commands.NewModifyOrdersCommandHandler(c.session, c.registry, c.cancels)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.cancels)
}

func (c *CompositionRoot) CreateGetRobotStatusQueryHandler() queries.GetRobotStatusQueryHandler {
	return queries.NewGetRobotStatusQueryHandler(c.session)
}

func (c *CompositionRoot) CreateIntakeLoop() *delivery.IntakeLoop {
	return delivery.NewIntakeLoop(c.console, c.session, c.CreatePlaceOrdersCommandHandler(), c.cfg.IntakePollInterval, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.session, c.recorder, c.cfg.StatusReportSchedule, c.logger)
}

// CreateHTTPServer builds the operator API with its OpenAPI validation.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	doc, err := openapi.Load()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		c.CreatePlaceOrdersCommandHandler(),
		c.CreateModifyOrdersCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateGetRobotStatusQueryHandler(),
	)
	return httpin.NewRouter(server, doc, c.metrics)
}

func (c *CompositionRoot) newController() *delivery.Controller {
	timing := c.cfg.Timing()
	gate := delivery.NewGate(c.console, c.session, c.recorder,
		timing.ConfirmTimeout, timing.ConfirmAttemptTimeout, c.logger)
	listener := delivery.NewModificationListener(c.console, c.session,
		c.CreateModifyOrdersCommandHandler(), timing.ModifyWindow, c.logger)

	return delivery.NewController(
		c.session,
		c.registry,
		c.navigator,
		services.NewRecoveryPlanner(),
		gate,
		listener,
		c.cancels,
		c.recorder,
		c.logger,
	)
}

func loadRegistry(path string) (*waypoint.Registry, error) {
	if path == "" {
		return waypoint.DefaultRegistry(), nil
	}
	registry, err := waypointfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints: %w", err)
	}
	return registry, nil
}

// newNavigator starts the simulator at home.
func newNavigator(cfg Config, registry *waypoint.Registry, logger *slog.Logger) (*simnav.Simulator, error) {
	home, err := registry.Get(waypoint.Home)
	if err != nil {
		return nil, err
	}

	unreachable := make([]kernel.Pose, 0, len(cfg.NavUnreachable))
	for _, name := range cfg.NavUnreachable {
		wp, err := registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("invalid NAV_UNREACHABLE entry: %w", err)
		}
		unreachable = append(unreachable, wp.Pose())
	}

	return simnav.NewSimulator(home.Pose(), cfg.NavSpeed, unreachable, logger), nil
}
