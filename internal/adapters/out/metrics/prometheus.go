// Package metrics provides the Prometheus implementation of ports.DeliveryRecorder.
package metrics

import (
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder records delivery events as Prometheus metrics.
type PrometheusRecorder struct {
	cyclesTotal        *prometheus.CounterVec
	goalsTotal         *prometheus.CounterVec
	confirmationsTotal *prometheus.CounterVec
	cancelsTotal       *prometheus.CounterVec
	queueLength        prometheus.Gauge
	robotState         *prometheus.GaugeVec
}

// NewPrometheusRecorder registers the delivery metrics with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		cyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "butler_delivery_cycles_total",
				Help: "Total number of finished delivery cycles by outcome",
			},
			[]string{"outcome"},
		),
		goalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "butler_navigation_goals_total",
				Help: "Total number of navigation goals by target waypoint and terminal status",
			},
			[]string{"target", "status"},
		),
		confirmationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "butler_confirmations_total",
				Help: "Total number of confirmation waits by location and outcome",
			},
			[]string{"location", "outcome"},
		),
		cancelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "butler_cancel_requests_total",
				Help: "Total number of cancellation requests by reason",
			},
			[]string{"reason"},
		),
		queueLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "butler_order_queue_length",
				Help: "Number of destinations waiting in the order queue",
			},
		),
		robotState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "butler_robot_state",
				Help: "Current logical state of the robot (1 for the active state)",
			},
			[]string{"state"},
		),
	}
}

// CycleFinished counts a finished delivery cycle.
func (p *PrometheusRecorder) CycleFinished(outcome string) {
	p.cyclesTotal.WithLabelValues(outcome).Inc()
}

// GoalFinished counts a navigation goal.
func (p *PrometheusRecorder) GoalFinished(target string, status ports.GoalStatus) {
	p.goalsTotal.WithLabelValues(target, status.String()).Inc()
}

// ConfirmationFinished counts a confirmation wait.
func (p *PrometheusRecorder) ConfirmationFinished(location, outcome string) {
	p.confirmationsTotal.WithLabelValues(location, outcome).Inc()
}

// CancelRequested counts a cancellation request.
func (p *PrometheusRecorder) CancelRequested(reason robot.CancelReason) {
	p.cancelsTotal.WithLabelValues(string(reason)).Inc()
}

// ObserveSession updates the queue and state gauges.
func (p *PrometheusRecorder) ObserveSession(snapshot robot.Snapshot) {
	p.queueLength.Set(float64(len(snapshot.Queue)))
	for _, s := range robot.States() {
		value := 0.0
		if s == snapshot.State {
			value = 1
		}
		p.robotState.WithLabelValues(s.String()).Set(value)
	}
}

var _ ports.DeliveryRecorder = (*PrometheusRecorder)(nil)
