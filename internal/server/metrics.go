package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

type metrics struct {
	evaluations *prometheus.CounterVec
	scores      prometheus.Histogram
	generations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pwcheck",
			Name:      "evaluations_total",
			Help:      "Password evaluations by strength tier.",
		}, []string{"strength"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pwcheck",
			Name:      "evaluation_score",
			Help:      "Distribution of total evaluation scores.",
			Buckets:   []float64{30, 60, 80, 100, 125},
		}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pwcheck",
			Name:      "generations_total",
			Help:      "Password generation requests by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.evaluations, m.scores, m.generations)
	return m
}

func (m *metrics) observe(r scorer.Report) {
	m.evaluations.WithLabelValues(r.Strength.String()).Inc()
	m.scores.Observe(float64(r.TotalScore))
}
