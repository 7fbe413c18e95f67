package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotalMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "latentd",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of inference runs",
		},
		[]string{"algorithm", "status"},
	)

	drawsTotalMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "latentd",
			Subsystem: "engine",
			Name:      "draws_total",
			Help:      "Total number of recorded posterior draws",
		},
	)

	acceptedTotalMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "latentd",
			Subsystem: "engine",
			Name:      "accepted_draws_total",
			Help:      "Total number of accepted sampler transitions among recorded draws",
		},
	)

	activeRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "latentd",
			Subsystem: "engine",
			Name:      "active_runs",
			Help:      "Inference runs currently executing",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotalMetric, drawsTotalMetric, acceptedTotalMetric, activeRuns)
}
