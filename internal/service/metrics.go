package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"dubss/internal/workflow"
)

var transitionCounter *prometheus.CounterVec

// RegisterMetrics registers the workflow metrics on reg. Call once at startup;
// when never called the services run without metrics (tests do this).
func RegisterMetrics(reg prometheus.Registerer) error {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Total number of committed trámite state transitions.",
		},
		[]string{"from", "to"},
	)
	if err := reg.Register(c); err != nil {
		return err
	}
	transitionCounter = c
	return nil
}

func countTransition(from, to workflow.Estado) {
	if transitionCounter != nil {
		transitionCounter.WithLabelValues(string(from), string(to)).Inc()
	}
}
