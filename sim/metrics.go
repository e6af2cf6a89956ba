package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "springgraph_steps_total",
		Help: "Total number of simulation steps advanced.",
	})

	stepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "springgraph_step_seconds",
		Help:    "Wall time spent inside a single simulation step.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	maxDisplacement = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "springgraph_max_displacement",
		Help: "Largest node displacement in the most recent step.",
	})

	clampedNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "springgraph_clamped_nodes_total",
		Help: "Node positions pulled back inside the viewport.",
	})
)
