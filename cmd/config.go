package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"butler/internal/core/application/delivery"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config holds the process settings. Values come from the environment (an
// optional .env file is loaded first) and are overridden by command-line flags.
type Config struct {
	HTTPPort string
	// WaypointsFile is a YAML waypoint registry; empty means the built-in one.
	WaypointsFile string

	ConfirmTimeout        time.Duration
	ConfirmAttemptTimeout time.Duration
	ModifyWindow          time.Duration
	IntakePollInterval    time.Duration

	// StatusReportSchedule is a cron expression with a seconds field.
	StatusReportSchedule string

	// NavSpeed is the simulated travel speed in map units per second.
	NavSpeed float64
	// NavUnreachable names waypoints the simulated planner cannot reach.
	NavUnreachable []string

	LogLevel slog.Level
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	timing := delivery.DefaultTiming()
	return Config{
		HTTPPort:              "8080",
		ConfirmTimeout:        timing.ConfirmTimeout,
		ConfirmAttemptTimeout: timing.ConfirmAttemptTimeout,
		ModifyWindow:          timing.ModifyWindow,
		IntakePollInterval:    timing.IntakePollInterval,
		StatusReportSchedule:  "*/10 * * * * *",
		NavSpeed:              1.0,
		LogLevel:              slog.LevelInfo,
	}
}

// Timing returns the delivery time windows.
func (c Config) Timing() delivery.Timing {
	return delivery.Timing{
		ConfirmTimeout:        c.ConfirmTimeout,
		ConfirmAttemptTimeout: c.ConfirmAttemptTimeout,
		ModifyWindow:          c.ModifyWindow,
		IntakePollInterval:    c.IntakePollInterval,
	}
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	var err error
	if c.HTTPPort == "" {
		err = errors.Join(err, errors.New("HTTP_PORT is required"))
	}
	for key, d := range map[string]time.Duration{
		"CONFIRM_TIMEOUT":         c.ConfirmTimeout,
		"CONFIRM_ATTEMPT_TIMEOUT": c.ConfirmAttemptTimeout,
		"MODIFY_WINDOW":           c.ModifyWindow,
		"INTAKE_POLL_INTERVAL":    c.IntakePollInterval,
	} {
		if d <= 0 {
			err = errors.Join(err, fmt.Errorf("%s must be positive, got %s", key, d))
		}
	}
	if c.ConfirmAttemptTimeout > c.ConfirmTimeout {
		err = errors.Join(err, errors.New("CONFIRM_ATTEMPT_TIMEOUT must not exceed CONFIRM_TIMEOUT"))
	}
	if c.NavSpeed < 0 {
		err = errors.Join(err, fmt.Errorf("NAV_SPEED must not be negative, got %v", c.NavSpeed))
	}
	return err
}

// LoadDotEnv loads path into the environment. A missing file is not an error.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the configuration from lookup (os.LookupEnv in
// production) and then from args, which must not include the program name.
func LoadConfig(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	logLevel := cfg.LogLevel.String()
	flagSet := pflag.NewFlagSet("butler", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "port of the operator HTTP API")
	flagSet.StringVar(&cfg.WaypointsFile, "waypoints", cfg.WaypointsFile, "YAML waypoint registry (default: built-in)")
	flagSet.DurationVar(&cfg.ConfirmTimeout, "confirm-timeout", cfg.ConfirmTimeout, "confirmation window at each stop")
	flagSet.DurationVar(&cfg.ConfirmAttemptTimeout, "confirm-attempt-timeout", cfg.ConfirmAttemptTimeout, "wait for each yes/no prompt")
	flagSet.DurationVar(&cfg.ModifyWindow, "modify-window", cfg.ModifyWindow, "wait for each queue modification prompt")
	flagSet.DurationVar(&cfg.IntakePollInterval, "intake-poll", cfg.IntakePollInterval, "order prompt wait while idle")
	flagSet.StringVar(&cfg.StatusReportSchedule, "status-schedule", cfg.StatusReportSchedule, "cron schedule (with seconds) of the status report")
	flagSet.Float64Var(&cfg.NavSpeed, "nav-speed", cfg.NavSpeed, "simulated travel speed in map units per second")
	flagSet.StringSliceVar(&cfg.NavUnreachable, "nav-unreachable", cfg.NavUnreachable, "waypoints the simulated planner cannot reach")
	flagSet.StringVar(&logLevel, "log-level", logLevel, "debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFromProcess loads .env and reads the process environment and
// arguments.
func LoadConfigFromProcess() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return LoadConfig(os.Args[1:], os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error

	if v, ok := lookup("HTTP_PORT"); ok {
		c.HTTPPort = v
	}
	if v, ok := lookup("WAYPOINTS_FILE"); ok {
		c.WaypointsFile = v
	}
	if v, ok := lookup("STATUS_REPORT_SCHEDULE"); ok {
		c.StatusReportSchedule = v
	}

	err = errors.Join(err,
		envDuration(lookup, "CONFIRM_TIMEOUT", &c.ConfirmTimeout),
		envDuration(lookup, "CONFIRM_ATTEMPT_TIMEOUT", &c.ConfirmAttemptTimeout),
		envDuration(lookup, "MODIFY_WINDOW", &c.ModifyWindow),
		envDuration(lookup, "INTAKE_POLL_INTERVAL", &c.IntakePollInterval),
	)

	if v, ok := lookup("NAV_SPEED"); ok {
		speed, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("invalid NAV_SPEED %q: %w", v, perr))
		} else {
			c.NavSpeed = speed
		}
	}
	if v, ok := lookup("NAV_UNREACHABLE"); ok {
		c.NavUnreachable = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		if perr := c.LogLevel.UnmarshalText([]byte(v)); perr != nil {
			err = errors.Join(err, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, perr))
		}
	}

	return err
}

func envDuration(lookup func(string) (string, bool), key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
